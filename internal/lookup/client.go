package lookup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Backend resolves one lookup against a data source. Hard failures return an
// error; "nothing found" is a nil or empty payload with no error.
type Backend interface {
	Fetch(ctx context.Context, path string, params map[string]string) (interface{}, error)
}

// Presenter shapes a successful lookup for the caller. The query mapping
// holds only the parameters that were actually provided.
type Presenter func(op *Operation, query map[string]string, data interface{}) interface{}

// Client is the lookup facade: it validates arguments, runs the backend, and
// presents the result. It is stateless across calls and safe for concurrent
// use.
type Client struct {
	catalog *Catalog
	backend Backend
	present Presenter
	log     zerolog.Logger
}

// NewClient wires a client. A nil presenter means passthrough.
func NewClient(catalog *Catalog, backend Backend, present Presenter, log zerolog.Logger) *Client {
	if present == nil {
		present = Passthrough
	}
	return &Client{
		catalog: catalog,
		backend: backend,
		present: present,
		log:     log,
	}
}

// Catalog returns the client's operation catalog.
func (c *Client) Catalog() *Catalog { return c.catalog }

// Execute runs the named operation. Validation failures come back as a
// MissingParams result value, not an error; backend failures are errors.
func (c *Client) Execute(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	op, ok := c.catalog.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", name)
	}
	return c.Do(ctx, op, args)
}

// Do runs one operation end to end: validate, fetch, present.
func (c *Client) Do(ctx context.Context, op *Operation, args map[string]interface{}) (interface{}, error) {
	if miss := op.Rule.Validate(args); miss != nil {
		c.log.Warn().
			Str("path", op.Path).
			Strs("missing", miss.Fields).
			Msg("missing required parameters")
		return miss.Result(), nil
	}

	query := op.CleanArgs(args)
	c.log.Info().
		Str("path", op.Path).
		Interface("params", query).
		Msg("executing lookup")

	data, err := c.backend.Fetch(ctx, op.Path, query)
	if err != nil {
		c.log.Error().
			Err(err).
			Str("path", op.Path).
			Interface("params", query).
			Msg("lookup failed")
		return nil, err
	}

	return c.present(op, query, data), nil
}
