package model

// QueryCategory 是查询类别的封闭标签集合。
// 任何无法识别的输入都落到 CategoryGeneral，不在传输层报错。
type QueryCategory string

const (
	CategorySymptoms   QueryCategory = "symptoms"
	CategoryDisease    QueryCategory = "disease"
	CategoryMedication QueryCategory = "medication"
	CategoryGeneral    QueryCategory = "general"
)

// ParseCategory 将任意字符串规整为封闭的类别标签，默认分支为 general。
func ParseCategory(s string) QueryCategory {
	switch QueryCategory(s) {
	case CategorySymptoms, CategoryDisease, CategoryMedication:
		return QueryCategory(s)
	default:
		return CategoryGeneral
	}
}
