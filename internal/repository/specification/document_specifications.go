package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadedBy restricts documents to a single owner. Ownership comparisons
// use uuid.UUID end to end; string identities never reach the store layer.
type UploadedBy struct {
	UserID uuid.UUID
}

func (s UploadedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("uploaded_by = ?", s.UserID)
}

// ActiveOnly keeps documents whose visibility toggle is on
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByDocumentID filters chunks of one document
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByDocumentIDs filters chunks to a set of parent documents
type ByDocumentIDs struct {
	DocumentIDs []uuid.UUID
}

func (s ByDocumentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id IN ?", s.DocumentIDs)
}

// EmbeddedIs filters chunks on their embedding flag
type EmbeddedIs struct {
	Embedded bool
}

func (s EmbeddedIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedded = ?", s.Embedded)
}
