package borehole

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/width"
)

// ParserVersion changes whenever Parse would produce a different Record for the
// same bytes. It is part of the cache key.
const ParserVersion = "2"

var (
	ErrNoSoilLayers = errors.New("no soil layer (岩石土区分) found")
	ErrNoSPT        = errors.New("no standard penetration test (標準貫入試験) found")
)

// Boring-log element names
const (
	tagLatDeg       = "緯度_度"
	tagLatMin       = "緯度_分"
	tagLatSec       = "緯度_秒"
	tagLonDeg       = "経度_度"
	tagLonMin       = "経度_分"
	tagLonSec       = "経度_秒"
	tagStartDate    = "調査期間_開始年月日"
	tagTipElevation = "孔口標高"

	tagLayer      = "岩石土区分"
	tagLayerDepth = "岩石土区分_下端深度"
	tagLayerName  = "岩石土区分_岩石土名"
	tagLayerCode  = "岩石土区分_岩石土記号"

	tagNote      = "観察記事"
	tagNoteUpper = "観察記事_上端深度"
	tagNoteLower = "観察記事_下端深度"
	tagNoteText  = "観察記事_記事"

	tagSPT            = "標準貫入試験"
	tagSPTDepth       = "標準貫入試験_開始深度"
	tagSPTBlows       = "標準貫入試験_合計打撃回数"
	tagSPTPenetration = "標準貫入試験_合計貫入量"

	tagWater         = "孔内水位"
	tagWaterLevel    = "孔内水位_孔内水位"
	tagWaterLevelAlt = "孔内水位_水位"
)

type node struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

// all returns every descendant with the given local name in document order
func (n *node) all(name string) []*node {
	var out []*node
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if c.XMLName.Local == name {
			out = append(out, c)
		}
		out = append(out, c.all(name)...)
	}
	return out
}

// first returns the first descendant with the given name, or nil
func (n *node) first(name string) *node {
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if c.XMLName.Local == name {
			return c
		}
		if f := c.first(name); f != nil {
			return f
		}
	}
	return nil
}

func (n *node) text(name string) (string, bool) {
	f := n.first(name)
	if f == nil {
		return "", false
	}
	s := strings.TrimSpace(f.Text)
	return s, s != ""
}

func (n *node) float(name string) (float64, error) {
	s, ok := n.text(name)
	if !ok {
		return 0, fmt.Errorf("%s: missing", name)
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// parseNumber accepts full-width digits, which some exporters emit
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(width.Narrow.String(s)), 64)
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "cp932", "ms932", "windows-31j", "shift_jis", "shift-jis", "sjis", "x-sjis":
		return japanese.ShiftJIS.NewDecoder().Reader(input), nil
	}
	return charset.NewReaderLabel(label, input)
}

// LoadFile parses a boring-log XML file
func LoadFile(path string, log *zap.Logger) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data), log)
}

// Parse decodes a boring-log XML document. Missing site metadata is logged and
// left zero; a document without soil layers or SPT readings is an error.
func Parse(r io.Reader, log *zap.Logger) (*Record, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var root node
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	rec := &Record{}

	if lat, lon, err := parseLatLon(&root); err != nil {
		log.Warn("site coordinates not found", zap.Error(err))
	} else {
		rec.Lat, rec.Lon = lat, lon
	}

	if s, ok := root.text(tagStartDate); ok {
		rec.StartDate = s
	} else {
		log.Warn("investigation start date not found")
	}

	if v, err := root.float(tagTipElevation); err != nil {
		log.Warn("borehole tip elevation not found", zap.Error(err))
	} else {
		rec.TipElevation = v
	}

	layers, err := parseSoilLayers(&root)
	if err != nil {
		return nil, err
	}
	rec.SoilLayers = layers

	rec.ObservationNotes = parseObservationNotes(&root, log)

	spt, err := parseSPT(&root, log)
	if err != nil {
		return nil, err
	}
	rec.SPT = spt

	rec.GroundWaterLevel = parseGroundWater(&root)

	return rec, nil
}

func parseLatLon(root *node) (lat, lon float64, err error) {
	dms := func(d, m, s string) (float64, error) {
		deg, err := root.float(d)
		if err != nil {
			return 0, err
		}
		minutes, err := root.float(m)
		if err != nil {
			return 0, err
		}
		sec, err := root.float(s)
		if err != nil {
			return 0, err
		}
		return deg + minutes/60 + sec/3600, nil
	}

	if lat, err = dms(tagLatDeg, tagLatMin, tagLatSec); err != nil {
		return 0, 0, err
	}
	if lon, err = dms(tagLonDeg, tagLonMin, tagLonSec); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func parseSoilLayers(root *node) ([]SoilLayer, error) {
	var layers []SoilLayer
	for i, n := range root.all(tagLayer) {
		depth, err := n.float(tagLayerDepth)
		if err != nil {
			return nil, fmt.Errorf("soil layer %d: %w", i+1, err)
		}
		name, _ := n.text(tagLayerName)
		code, _ := n.text(tagLayerCode)
		layers = append(layers, SoilLayer{LowerDepth: depth, ClassName: name, ClassCode: code})
	}
	if len(layers) == 0 {
		return nil, ErrNoSoilLayers
	}
	return layers, nil
}

func parseObservationNotes(root *node, log *zap.Logger) []ObservationNote {
	var notes []ObservationNote
	for i, n := range root.all(tagNote) {
		upper, err := n.float(tagNoteUpper)
		if err != nil {
			log.Warn("skipping observation note", zap.Int("index", i+1), zap.Error(err))
			continue
		}
		lower, err := n.float(tagNoteLower)
		if err != nil {
			log.Warn("skipping observation note", zap.Int("index", i+1), zap.Error(err))
			continue
		}
		text, _ := n.text(tagNoteText)
		notes = append(notes, ObservationNote{UpperDepth: upper, LowerDepth: lower, Note: text})
	}
	if len(notes) == 0 {
		log.Warn("no observation notes found")
	}
	return notes
}

func parseSPT(root *node, log *zap.Logger) ([]SPTReading, error) {
	var readings []SPTReading
	for i, n := range root.all(tagSPT) {
		depth, err := n.float(tagSPTDepth)
		if err != nil {
			return nil, fmt.Errorf("SPT %d: %w", i+1, err)
		}
		blows, err := n.float(tagSPTBlows)
		if err != nil {
			// self-weight penetration and aborted tests carry no blow count
			log.Warn("skipping SPT without blow count", zap.Float64("depth", depth), zap.Error(err))
			continue
		}
		pen, err := n.float(tagSPTPenetration)
		if err != nil {
			log.Debug("SPT penetration length missing", zap.Float64("depth", depth))
			pen = 0
		}
		readings = append(readings, SPTReading{Depth: depth, NValue: blows, PenetrationLength: pen})
	}
	if len(readings) == 0 {
		return nil, ErrNoSPT
	}
	return readings, nil
}

// parseGroundWater returns the shallowest logged water level
func parseGroundWater(root *node) *float64 {
	var level *float64
	for _, n := range root.all(tagWater) {
		v, err := n.float(tagWaterLevel)
		if err != nil {
			if v, err = n.float(tagWaterLevelAlt); err != nil {
				continue
			}
		}
		if level == nil || v < *level {
			lv := v
			level = &lv
		}
	}
	return level
}
