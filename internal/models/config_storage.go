package models

// Well-known configuration keys in config_storage.
const (
	ConfigKeyVacationRules = "VACATION_TENURE_RULES"
	ConfigKeyHolidays      = "HOLIDAYS_NEW"
)

type ConfigStorage struct {
	ConfigKey  string `gorm:"primaryKey;column:config_key" json:"config_key"`
	ConfigJSON string `gorm:"column:config_json" json:"config_json"`
}

func (ConfigStorage) TableName() string {
	return "config_storage"
}

// TenureBracket maps whole years of service to yearly vacation days. The
// rule list is persisted as a JSON array under ConfigKeyVacationRules.
type TenureBracket struct {
	YearsMin int `json:"years_min"`
	YearsMax int `json:"years_max"`
	Days     int `json:"days"`
}

// Contains reports whether the bracket covers the given tenure.
func (b TenureBracket) Contains(years int) bool {
	return years >= b.YearsMin && years <= b.YearsMax
}

// DefaultTenureBrackets is the fallback rule set used when no rules are
// persisted yet.
func DefaultTenureBrackets() []TenureBracket {
	return []TenureBracket{
		{YearsMin: 0, YearsMax: 4, Days: 30},
		{YearsMin: 5, YearsMax: 9, Days: 31},
		{YearsMin: 10, YearsMax: 14, Days: 32},
		{YearsMin: 15, YearsMax: 99, Days: 33},
	}
}
