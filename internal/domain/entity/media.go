// Package entity 定义领域实体
package entity

import (
	"time"
)

// Media 媒体文件实体
// 文件字节存放在对象存储中，URL 经 API 代理访问而不是直接暴露。
type Media struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID  string    `json:"project_id" gorm:"type:uuid;index;not null"`
	ObjectName string    `json:"object_name" gorm:"type:varchar(512);not null"`
	FileName   string    `json:"file_name" gorm:"type:varchar(255);not null"`
	MimeType   string    `json:"mime_type" gorm:"type:varchar(128);not null"`
	Size       int64     `json:"size" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Media) TableName() string {
	return "media"
}

// NewMedia 创建新媒体记录
func NewMedia(projectID, objectName, fileName, mimeType string, size int64) *Media {
	return &Media{
		ProjectID:  projectID,
		ObjectName: objectName,
		FileName:   fileName,
		MimeType:   mimeType,
		Size:       size,
		CreatedAt:  time.Now(),
	}
}
