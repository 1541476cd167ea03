package models

import (
	"strings"
	"time"
)

// AttachmentKind distinguishes the reference image groups on a record.
type AttachmentKind string

const (
	AttachmentInput  AttachmentKind = "input"
	AttachmentResult AttachmentKind = "result"
)

// MaxResultAttachments bounds the number of result images per record.
const MaxResultAttachments = 5

// Attachment is an opaque image reference carried by a record. At most one
// input attachment and up to MaxResultAttachments result attachments are
// permitted; the store enforces this at mutation time.
type Attachment struct {
	Kind AttachmentKind `json:"kind" yaml:"kind"`
	Data string         `json:"data" yaml:"data"`
}

// Record is a single prompt entry.
//
// ID and CreatedAt are immutable after creation; UpdatedAt is refreshed on
// every mutation. Category always references an existing category node or
// the reserved "other" node. Tags preserve insertion order and contain no
// duplicate values.
type Record struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Category    string       `json:"category" yaml:"category"`
	Tags        []string     `json:"tags" yaml:"tags"`
	Content     string       `json:"content" yaml:"-"`
	Notes       string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Rating      int          `json:"rating" yaml:"rating"`
	Attachments []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a deep copy of the record. History snapshots and store reads
// rely on clones so later mutations cannot reach shared slices.
func (r *Record) Clone() *Record {
	dup := *r
	if r.Tags != nil {
		dup.Tags = make([]string, len(r.Tags))
		copy(dup.Tags, r.Tags)
	}
	if r.Attachments != nil {
		dup.Attachments = make([]Attachment, len(r.Attachments))
		copy(dup.Attachments, r.Attachments)
	}
	return &dup
}

// HasTag reports whether the record carries the tag (case-insensitive).
func (r *Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// NormalizeTags trims each tag and drops duplicates by value, preserving
// first-occurrence order. Empty tags are discarded.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// CountAttachments returns the number of input and result attachments.
func CountAttachments(attachments []Attachment) (inputs, results int) {
	for _, a := range attachments {
		switch a.Kind {
		case AttachmentInput:
			inputs++
		case AttachmentResult:
			results++
		}
	}
	return inputs, results
}
