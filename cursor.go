package tweetie

import "context"

// Page is one page of a paginated listing. An empty Next means the listing is exhausted.
type Page[T any] struct {
	Items []T
	Next  string
}

// PageFunc fetches the page that starts at cursor. The first call receives "".
type PageFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Cursor lazily walks a paginated listing one item at a time. Pages are fetched
// only when the buffered items run out, so a consumer that stops early never pays
// for pages it does not read. A Cursor is single-use: the remote cursor it follows
// is stateful, so there is no rewind.
//
//	cur := client.UserTimeline(ctx, "jack")
//	for cur.Next() {
//		tw := cur.Item()
//	}
//	if err := cur.Err(); err != nil { ... }
type Cursor[T any] struct {
	ctx   context.Context
	fetch PageFunc[T]

	buf     []T
	item    T
	next    string
	started bool
	done    bool
	err     error
	pages   int
}

// NewCursor returns a Cursor that pulls pages from fetch.
func NewCursor[T any](ctx context.Context, fetch PageFunc[T]) *Cursor[T] {
	return &Cursor[T]{ctx: ctx, fetch: fetch}
}

// Next advances to the next item, fetching a new page when needed.
// It returns false once the listing is exhausted or an error occurred.
func (c *Cursor[T]) Next() bool {
	for len(c.buf) == 0 {
		if c.done || c.err != nil {
			return false
		}
		if c.started && c.next == "" {
			c.done = true
			return false
		}
		if err := c.ctx.Err(); err != nil {
			c.err = err
			return false
		}
		page, err := c.fetch(c.ctx, c.next)
		if err != nil {
			c.err = err
			return false
		}
		c.started = true
		c.pages++
		c.buf = page.Items
		c.next = page.Next
		if len(page.Items) == 0 && page.Next != "" {
			// An empty page that still advertises a continuation would loop forever.
			c.done = true
			return false
		}
	}
	c.item = c.buf[0]
	var zero T
	c.buf[0] = zero
	c.buf = c.buf[1:]
	return true
}

// Item returns the item Next advanced to.
func (c *Cursor[T]) Item() T { return c.item }

// Err returns the first error encountered while paging, if any.
func (c *Cursor[T]) Err() error { return c.err }

// Pages returns how many pages have been fetched so far.
func (c *Cursor[T]) Pages() int { return c.pages }

// Take consumes at most limit items (limit <= 0 means no bound) and returns them
// in cursor order. On error it returns nil and the error; partial results are dropped.
func (c *Cursor[T]) Take(limit int) ([]T, error) {
	var out []T
	for (limit <= 0 || len(out) < limit) && c.Next() {
		out = append(out, c.Item())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
