package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"medi-ai-go/internal/model"
)

// DoctorService 定义了附近医生检索的接口。
// 实现是确定性的模板填充：同一 (city, state, specialty) 输入永远得到同样的输出，
// 没有真实的地理编码，也不访问任何目录数据。
type DoctorService interface {
	Search(loc model.Location, specialty string) []model.DoctorInfo
}

type doctorService struct{}

// NewDoctorService 创建一个新的 DoctorService 实例。
func NewDoctorService() DoctorService {
	return &doctorService{}
}

// 调用方未提供坐标时使用的默认位置。
var defaultCoordinates = model.Coordinates{Lat: 40.7128, Lng: -74.0060}

type doctorTemplate struct {
	name         string
	specialty    string
	hospital     string // fmt 模板，%s 为城市名
	address      string
	distance     string
	rating       float64
	phone        string
	availability string
}

var doctorTemplates = []doctorTemplate{
	{"Dr. Sarah Johnson", "General Practitioner", "%s Medical Center", "123 Main St, %s", "1.2 km", 4.8, "+1-555-0123", "Available today"},
	{"Dr. Michael Chen", "Cardiologist", "%s Heart Institute", "456 Oak Ave, %s", "2.8 km", 4.9, "+1-555-0456", "Available tomorrow"},
	{"Dr. Emily Rodriguez", "Pediatrician", "%s Children's Hospital", "789 Pine St, %s", "3.5 km", 4.7, "+1-555-0789", "Available today"},
	{"Dr. James Wilson", "Neurologist", "%s Neurology Center", "321 Elm St, %s", "4.1 km", 4.6, "+1-555-0234", "Available next week"},
	{"Dr. Priya Patel", "Orthopedic", "%s Orthopedic Clinic", "654 Maple Ave, %s", "5.3 km", 4.5, "+1-555-0567", "Available tomorrow"},
	{"Dr. David Kim", "Dermatologist", "%s Skin Care Center", "987 Cedar Rd, %s", "6.0 km", 4.4, "+1-555-0890", "Available next week"},
}

// Search 把城市名代入六条模板记录，按专科过滤后按距离升序返回。
// specialty 为空或 "all" 时返回全部；否则做大小写不敏感的子串匹配。
func (s *doctorService) Search(loc model.Location, specialty string) []model.DoctorInfo {
	coords := defaultCoordinates
	if loc.Lat != nil && loc.Lng != nil {
		coords = model.Coordinates{Lat: *loc.Lat, Lng: *loc.Lng}
	}

	wanted := strings.ToLower(strings.TrimSpace(specialty))
	doctors := make([]model.DoctorInfo, 0, len(doctorTemplates))
	for _, t := range doctorTemplates {
		if wanted != "" && wanted != "all" && !strings.Contains(strings.ToLower(t.specialty), wanted) {
			continue
		}
		c := coords
		doctors = append(doctors, model.DoctorInfo{
			Name:         t.name,
			Specialty:    t.specialty,
			Hospital:     fmt.Sprintf(t.hospital, loc.City),
			Address:      fmt.Sprintf(t.address, loc.City),
			Distance:     t.distance,
			Rating:       t.rating,
			Phone:        t.phone,
			Availability: t.availability,
			Coordinates:  &c,
		})
	}

	sort.SliceStable(doctors, func(i, j int) bool {
		return distanceKm(doctors[i].Distance) < distanceKm(doctors[j].Distance)
	})
	return doctors
}

// distanceKm 解析 "1.2 km" 形式字符串的数值前缀，解析失败时排到末尾。
func distanceKm(s string) float64 {
	numPart := s
	if i := strings.IndexByte(s, ' '); i >= 0 {
		numPart = s[:i]
	}
	v, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 1 << 20
	}
	return v
}
