package brochure

import "errors"

var (
	ErrNoBrochure  = errors.New("no brochure available")
	ErrNotPDF      = errors.New("brochure must be a PDF")
	ErrLinkNotSent = errors.New("brochure link could not be delivered")
)
