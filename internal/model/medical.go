package model

// Location 描述用户提交的地理位置，仅 City 是必填。
type Location struct {
	City    string   `json:"city"`
	State   string   `json:"state,omitempty"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// MedicalQuery 代表一次用户查询，按请求构建，构建后不再修改，也不落盘。
type MedicalQuery struct {
	Text     string
	Category QueryCategory
	// RawCategory 保留调用方提交的原始字符串，回显到结果的 queryType 字段。
	RawCategory string
	Location    *Location
}

// MedicationInfo 描述一种药物。除名称外所有字段都可能被上游模型省略。
type MedicationInfo struct {
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	GeneralDosage string `json:"generalDosage,omitempty"`
	Purpose       string `json:"purpose,omitempty"`
}

// AssistantResult 描述一次查询的结构化结果。
// 上游模型的输出是被强制解析的自由文本，因此除 queryType 和 timestamp 外，
// 没有任何字段保证存在。传输层实际使用 map 以保留未知字段，
// 该结构体是给客户端和测试用的带类型视图。
type AssistantResult struct {
	Overview               string           `json:"overview,omitempty"`
	PossibleConditions     []string         `json:"possibleConditions,omitempty"`
	Symptoms               []string         `json:"symptoms,omitempty"`
	Causes                 []string         `json:"causes,omitempty"`
	RiskFactors            []string         `json:"riskFactors,omitempty"`
	CommonMedications      []MedicationInfo `json:"commonMedications,omitempty"`
	Warnings               []string         `json:"warnings,omitempty"`
	WhenToSeeDoctor        []string         `json:"whenToSeeDoctor,omitempty"`
	EmergencySymptoms      []string         `json:"emergencySymptoms,omitempty"`
	PreventiveMeasures     []string         `json:"preventiveMeasures,omitempty"`
	RecommendedSpecialists []string         `json:"recommendedSpecialists,omitempty"`
	QueryType              string           `json:"queryType"`
	Timestamp              string           `json:"timestamp"`
	RawResponse            string           `json:"rawResponse,omitempty"`
}

// Coordinates 是一个经纬度坐标对。
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DoctorInfo 代表按城市模板生成的一条医生记录，按请求生成，从不存储。
type DoctorInfo struct {
	Name         string       `json:"name"`
	Specialty    string       `json:"specialty"`
	Hospital     string       `json:"hospital"`
	Address      string       `json:"address"`
	Distance     string       `json:"distance"` // 形如 "1.2 km"
	Rating       float64      `json:"rating"`
	Phone        string       `json:"phone"`
	Availability string       `json:"availability"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
}

// Category 是 /api/medical/categories 返回的静态类别记录。
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
