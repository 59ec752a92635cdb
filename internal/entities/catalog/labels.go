package catalog

import (
	"fmt"
	"strings"
)

var typeLabels = map[string]string{
	"normal":   "一般",
	"fire":     "火",
	"water":    "水",
	"electric": "電",
	"grass":    "草",
	"ice":      "冰",
	"fighting": "格鬥",
	"poison":   "毒",
	"ground":   "地面",
	"flying":   "飛行",
	"psychic":  "超能力",
	"bug":      "蟲",
	"rock":     "岩石",
	"ghost":    "幽靈",
	"dragon":   "龍",
	"dark":     "惡",
	"steel":    "鋼",
	"fairy":    "妖精",
}

var itemLabels = map[string]string{
	"thunder-stone": "雷之石",
	"fire-stone":    "火之石",
	"water-stone":   "水之石",
	"leaf-stone":    "葉之石",
	"moon-stone":    "月之石",
	"sun-stone":     "日之石",
	"shiny-stone":   "光之石",
	"dusk-stone":    "暗之石",
	"dawn-stone":    "覺醒石",
	"ice-stone":     "冰之石",
	"kings-rock":    "王者之證",
	"metal-coat":    "金屬膜",
	"dragon-scale":  "龍之鱗片",
	"up-grade":      "升級資料",
	"dubious-disc":  "可疑修正檔",
	"prism-scale":   "美麗鱗片",
	"reaper-cloth":  "靈界之布",
	"electirizer":   "電力增強器",
	"magmarizer":    "熔岩增強器",
	"protector":     "護具",
	"razor-claw":    "銳利之爪",
	"razor-fang":    "銳利之牙",
}

// TypeLabel returns the zh-TW label for a type, or the name unchanged.
func TypeLabel(name string) string {
	if label, ok := typeLabels[strings.ToLower(name)]; ok {
		return label
	}
	return name
}

// ItemLabel returns the zh-TW label for an evolution item, or the
// slug unchanged.
func ItemLabel(slug string) string {
	if label, ok := itemLabels[slug]; ok {
		return label
	}
	return slug
}

// DataUnavailableLabel is shown on degraded records.
const DataUnavailableLabel = "無法載入寶可夢資料"

// RequirementText renders the evolution condition for a stage in zh-TW.
func RequirementText(s EvolutionStage) string {
	if s.Trigger == "" {
		return "基本型態"
	}

	var parts []string
	switch s.Trigger {
	case "level-up":
		if s.MinLevel > 0 {
			parts = append(parts, fmt.Sprintf("等級 %d", s.MinLevel))
		}
		if s.MinHappiness > 0 {
			parts = append(parts, fmt.Sprintf("親密度 %d", s.MinHappiness))
		}
		if s.TimeOfDay != "" {
			if s.TimeOfDay == "day" {
				parts = append(parts, "白天")
			} else {
				parts = append(parts, "夜晚")
			}
		}
	case "use-item":
		if s.Item != "" {
			parts = append(parts, "使用 "+ItemLabel(s.Item))
		}
	case "trade":
		parts = append(parts, "交換")
		if s.Item != "" {
			parts = append(parts, "攜帶 "+ItemLabel(s.Item))
		}
	default:
		parts = append(parts, "特殊條件")
	}

	if len(parts) == 0 {
		return "進化條件"
	}
	return strings.Join(parts, "，")
}
