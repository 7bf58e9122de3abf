package domain

import (
	"fmt"
	"strconv"
)

func formatMB(mb float64) string {
	return strconv.FormatFloat(mb, 'f', -1, 64) + " MB"
}

func (i *Image) TitleOrDefault() string {
	if i.Title != nil && *i.Title != "" {
		return *i.Title
	}
	return "Untitled"
}

// for debug
func (i *Image) String() string {
	return fmt.Sprintf("[id:%d, filename:%s, title:%s, active:%t, categories:%d]", i.Id, i.Filename, i.TitleOrDefault(), i.Active, len(i.Categories))
}
