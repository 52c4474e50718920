package soil

import "strings"

// Category names follow the boring-log legend groups:
// primary soils, modifiers ("砂質", "礫混り", ...) and special materials.
var (
	PrimaryNames = []string{"礫", "礫質土", "砂", "砂質土", "シルト",
		"粘性土", "有機質土", "火山灰質粘性土", "高有機質土（腐植土）"}
	ModifierNames = []string{"砂質", "シルト質", "粘土質", "有機質", "火山灰質",
		"玉石混り", "砂利、礫混り", "砂混り", "シルト混り", "粘土混り",
		"有機質土混り", "火山灰混り", "貝殻混り"}
	SpecialNames = []string{"硬岩", "中硬岩", "軟岩、風化岩", "玉石", "浮石（軽石）", "シラス",
		"スコリア", "火山灰", "ローム", "黒ボク", "マサ", "表土", "埋土", "廃棄物"}
)

// Category is the legend classification of a soil class name.
// Unmatched indices are -1.
type Category struct {
	Primary  int
	Modifier int
	Special  int
}

// Known reports whether any group matched
func (c Category) Known() bool {
	return c.Primary >= 0 || c.Special >= 0
}

// Label returns a readable name for the category
func (c Category) Label() string {
	switch {
	case c.Primary >= 0 && c.Modifier >= 0:
		return ModifierNames[c.Modifier] + "+" + PrimaryNames[c.Primary]
	case c.Primary >= 0:
		return PrimaryNames[c.Primary]
	case c.Special >= 0:
		return SpecialNames[c.Special]
	}
	return "その他"
}

// Classify matches a class name against the legend groups.
// An exact primary name wins; otherwise a modifier prefix is stripped and the
// remainder must be a primary name; otherwise the special materials are tried.
func Classify(name string) Category {
	unknown := Category{Primary: -1, Modifier: -1, Special: -1}

	// listed as a modifier too, but it is its own primary group
	if name == "火山灰質粘性土" {
		return Category{Primary: 7, Modifier: -1, Special: -1}
	}

	if i := indexOf(PrimaryNames, name); i >= 0 {
		return Category{Primary: i, Modifier: -1, Special: -1}
	}

	for mi, mod := range ModifierNames {
		if !strings.Contains(name, mod) {
			continue
		}
		if pi := indexOf(PrimaryNames, strings.Replace(name, mod, "", 1)); pi >= 0 {
			return Category{Primary: pi, Modifier: mi, Special: -1}
		}
		break
	}

	unknown.Special = indexOf(SpecialNames, name)
	return unknown
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
