// Package registry implements the process-scoped Connection Registry
// (component C3): databases keyed by canonical spec string, connections
// keyed by a monotonically increasing numeric token, and the name-to-spec
// mapping that governs which database identifiers a client may address.
package registry

import (
	"sync"
	"sync/atomic"

	"github.com/panoplyio/dbsrv/internal/dberr"
	"github.com/panoplyio/dbsrv/internal/enginesql"
)

// nameToSpec is the closed, deliberately restrictive name->spec table.
// Implementations may extend it but must keep "default" mapped to the
// in-memory spec.
var nameToSpec = map[string]string{
	"default": ":memory:",
}

// ResolveSpec maps a client-provided database name to its canonical spec
// string. Unknown names fail InvalidArgument.
func ResolveSpec(name string) (string, error) {
	spec, ok := nameToSpec[name]
	if !ok {
		return "", dberr.InvalidArgument("unknown database identifier %q", name)
	}
	return spec, nil
}

// Database is one opened engine handle, shared by every Connection that
// references its spec.
type Database struct {
	ID     uint64
	Name   string
	Spec   string
	Engine *enginesql.Engine

	// activeConn is the most recently issued connection for this database,
	// reused by ResolveOrOpen while still active. Guarded by the owning
	// Registry's mu.
	activeConn *Connection
}

// Connection is a client's handle onto a Database, addressed by its Token.
type Connection struct {
	Token      uint64
	DatabaseID uint64

	mu     sync.Mutex
	active bool
}

func (c *Connection) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
}

// Registry owns the databases-by-spec and connections-by-id tables. All
// operations are safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	databasesBySpec map[string]*Database
	databasesByID   map[uint64]*Database
	connectionsByID map[uint64]*Connection

	nextDatabaseID uint64
	nextToken      uint64
}

func New() *Registry {
	return &Registry{
		databasesBySpec: make(map[string]*Database),
		databasesByID:   make(map[uint64]*Database),
		connectionsByID: make(map[uint64]*Connection),
	}
}

// ResolveOrOpen maps name to a spec, opening the database (lazily, on first
// use) if needed, and returns its currently active Connection if one
// exists, otherwise mints and stores a fresh one.
func (r *Registry) ResolveOrOpen(name string) (*Connection, error) {
	spec, err := ResolveSpec(name)
	if err != nil {
		return nil, err
	}

	db, err := r.openDatabase(name, spec)
	if err != nil {
		return nil, err
	}

	return r.reuseOrMintConnection(db), nil
}

func (r *Registry) openDatabase(name, spec string) (*Database, error) {
	r.mu.RLock()
	db, ok := r.databasesBySpec[spec]
	r.mu.RUnlock()
	if ok {
		return db, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// re-check under the write lock: another goroutine may have opened it
	// between the read-unlock above and here.
	if db, ok := r.databasesBySpec[spec]; ok {
		return db, nil
	}

	engine, err := enginesql.Open(spec)
	if err != nil {
		return nil, err
	}

	db = &Database{
		ID:     atomic.AddUint64(&r.nextDatabaseID, 1),
		Name:   name,
		Spec:   spec,
		Engine: engine,
	}
	r.databasesBySpec[spec] = db
	r.databasesByID[db.ID] = db
	return db, nil
}

// reuseOrMintConnection returns db's currently active connection, or mints
// and records a fresh one if there is none (first use, or the previous one
// was closed).
func (r *Registry) reuseOrMintConnection(db *Database) *Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	if db.activeConn != nil && db.activeConn.Active() {
		return db.activeConn
	}

	conn := &Connection{
		Token:      atomic.AddUint64(&r.nextToken, 1),
		DatabaseID: db.ID,
		active:     true,
	}
	r.connectionsByID[conn.Token] = conn
	db.activeConn = conn
	return conn
}

// Validate returns the Connection for token iff it exists and is active.
func (r *Registry) Validate(token uint64) (*Connection, error) {
	r.mu.RLock()
	conn, ok := r.connectionsByID[token]
	r.mu.RUnlock()
	if !ok || !conn.Active() {
		return nil, dberr.FailedPrecondition("connection %d is invalid or inactive", token)
	}
	return conn, nil
}

// Close marks a connection inactive. A closed token is never reused.
func (r *Registry) Close(token uint64) error {
	conn, err := r.Validate(token)
	if err != nil {
		return err
	}
	conn.close()
	return nil
}

// Database looks up a Database by id; used after resolving a Connection to
// reach its engine handle.
func (r *Registry) Database(id uint64) (*Database, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db, ok := r.databasesByID[id]
	if !ok {
		return nil, dberr.Internal("database %d not found", id)
	}
	return db, nil
}

// Shutdown closes every Database's engine handle, for clean process exit.
// It does not touch the connections table: once an engine is closed,
// in-flight Validate/ResolveOrOpen calls against it will simply fail at the
// query layer.
func (r *Registry) Shutdown() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var firstErr error
	for _, db := range r.databasesByID {
		if err := db.Engine.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Request is the dispatch union a client presents to name a connection:
// either a prior Token, or an inline Name for resolve-or-open.
type Request struct {
	Token *uint64
	Name  *string
}

// ResolveRequest dispatches a Request to Validate (token path) or
// ResolveOrOpen (inline path).
func (r *Registry) ResolveRequest(req Request) (*Connection, error) {
	switch {
	case req.Token != nil:
		return r.Validate(*req.Token)
	case req.Name != nil:
		return r.ResolveOrOpen(*req.Name)
	default:
		return nil, dberr.InvalidArgument("request names neither a connection token nor a database")
	}
}
