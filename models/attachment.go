package models

import "time"

// ResumeAttachment records an uploaded CV kept in object storage and
// attached to the careers notification mail.
type ResumeAttachment struct {
	PublicURL  string    `bson:"publicUrl" json:"publicUrl"`
	ObjectName string    `bson:"objectName" json:"objectName"`
	FileName   string    `bson:"fileName" json:"fileName"`
	MimeType   string    `bson:"mimeType" json:"mimeType"`
	SizeBytes  int64     `bson:"sizeBytes" json:"sizeBytes"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}
