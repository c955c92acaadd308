package biz

import (
	"github.com/go-kratos/kratos/v2/errors"
)

// Caller-facing error kinds. LINK_NOT_FOUND is the only kind surfaced
// distinctly to external clients; every 500-class kind below collapses to a
// generic internal error at the transport edge.
var (
	ErrLinkNotFound   = errors.NotFound("LINK_NOT_FOUND", "link not found")
	ErrInvalidURL     = errors.BadRequest("INVALID_URL", "invalid original url")
	ErrCodeGeneration = errors.InternalServer("CODE_GENERATION_ERROR", "generated short code is empty")
	ErrCodeCollision  = errors.InternalServer("CODE_COLLISION", "short code already exists")
	ErrStore          = errors.InternalServer("STORE_ERROR", "store operation failed")
	ErrCache          = errors.InternalServer("CACHE_ERROR", "cache operation failed")
)
