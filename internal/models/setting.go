package models

// Setting 全局展示配置，key 唯一
type Setting struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Key         string `json:"key" gorm:"column:key;unique;not null;size:100"`
	Value       string `json:"value" gorm:"column:value;type:text;not null"`
	Description string `json:"description" gorm:"column:description;size:255"`
}

// TableName 指定 Setting 结构体对应的数据库表名
func (Setting) TableName() string {
	return "settings"
}

// DefaultSettings 启动时若不存在则写入
var DefaultSettings = []Setting{
	{Key: "default_display_time", Value: "10", Description: "默认展示时长（秒）"},
	{Key: "auto_rotation", Value: "true", Description: "是否自动轮播"},
	{Key: "app_title", Value: "Dashboard App", Description: "应用标题"},
}
