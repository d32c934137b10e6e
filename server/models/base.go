package models

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	PAGE_SIZE = 10
)

var ErrInvalidPage = errors.New("invalid page")

type BaseModel struct {
	ID uint `json:"id,omitempty" gorm:"primarykey"`
}

// TimeStamped is embedded by value in every record that tracks when it
// was created and last modified. Created is written once on insert.
type TimeStamped struct {
	Created  time.Time `json:"created" gorm:"not null;<-:create"`
	Modified time.Time `json:"modified" gorm:"not null"`
}

type Paging struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
}

func (p *Paging) HasPrevious() bool {
	return p.Page > 1
}

func (p *Paging) HasNext() bool {
	return p.Page < p.Pages
}

func (p *Paging) Previous() int64 {
	return p.Page - 1
}

func (p *Paging) Next() int64 {
	return p.Page + 1
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page == 0 {
			page = 1
		}

		if pageSize <= 0 {
			pageSize = PAGE_SIZE
		}

		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func newPaging(page, pageSize, total int64) *Paging {
	paging := &Paging{Page: page, Total: total}
	if paging.Page == 0 {
		paging.Page = 1
	}

	paging.Pages = int64(math.Ceil(float64(paging.Total) / float64(pageSize)))
	if paging.Pages == 0 {
		paging.Pages = 1
	}

	return paging
}

// checkPage rejects page numbers outside [1, pages]. Page 1 is always
// valid so an empty listing still renders.
func checkPage(page int, pageSize int, total int64) error {
	if page == 0 {
		page = 1
	}

	if page < 0 {
		return ErrInvalidPage
	}

	if page > 1 && int64(page-1)*int64(pageSize) >= total {
		return ErrInvalidPage
	}

	return nil
}
