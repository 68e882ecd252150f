package mindmap

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/notewind/notewind/internal/model"
)

// WrapLRUCache memoizes layouts per note id. Layout is pure, so a cached
// result is identical to a recomputed one; the TTL only bounds staleness
// after a note's mind map is regenerated server-side.
func WrapLRUCache(next ILayouter, size int, ttl time.Duration) ILayouter {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &lruLayouter{
		next:  next,
		cache: expirable.NewLRU[string, *Layout](size, nil, ttl),
	}
}

type lruLayouter struct {
	next  ILayouter
	cache *expirable.LRU[string, *Layout]
}

func (l *lruLayouter) LayoutNote(ctx context.Context, note *model.Note) (*Layout, error) {
	if note == nil || note.ID == "" {
		return l.next.LayoutNote(ctx, note)
	}
	if cached, ok := l.cache.Get(note.ID); ok {
		logutil.GetLogger(ctx).Debug("layout cache hit", zap.String("note_id", note.ID))
		return cached, nil
	}
	res, err := l.next.LayoutNote(ctx, note)
	if err != nil {
		return nil, err
	}
	l.cache.Add(note.ID, res)
	return res, nil
}
