package models

import (
	"regexp"
	"strings"
)

// Report is a stored report payload that can be downloaded.
type Report struct {
	Model
	Title      string `gorm:"type:varchar(100);not null" json:"title"`
	ReportType string `gorm:"type:varchar(50);not null;index" json:"report_type"`
	Data       string `gorm:"type:text;not null" json:"data"`
}

// TableName overrides the table name
func (Report) TableName() string {
	return "reports"
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._ -]+`)

// Filename derives the download name from the title.
func (r *Report) Filename() string {
	name := strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(r.Title, "_"))
	name = strings.Trim(name, ".")
	if name == "" {
		name = "report"
	}
	return name + ".txt"
}
