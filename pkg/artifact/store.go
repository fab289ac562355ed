// Package artifact persists generated documents.
//
// Two backends implement [Store]:
//   - [DirStore]: plain files in an output directory such as
//     assets/generated (CLI default)
//   - [MongoStore]: one document per user, artifact and format, for
//     deployments that serve many profiles
//
// # Usage
//
//	store, err := artifact.NewDirStore("assets/generated")
//	if err != nil {
//	    return err
//	}
//	err = store.Save(ctx, artifact.Record{
//	    Username: "octocat",
//	    Name:     "stats-card",
//	    Format:   "svg",
//	    Data:     doc,
//	})
package artifact

import (
	"context"
	"time"
)

// Record is one stored document.
type Record struct {
	Username  string    `bson:"username"`
	Name      string    `bson:"name"` // artifact name, e.g. "tech-stack"
	Format    string    `bson:"format"`
	RunID     string    `bson:"run_id"`
	Data      []byte    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
}

// Filename returns the record's file name, e.g. "tech-stack.svg".
func (r Record) Filename() string {
	return r.Name + "." + r.Format
}

// Store saves and loads records. Saving a record with the same username,
// name and format replaces the previous one.
type Store interface {
	Save(ctx context.Context, rec Record) error
	// Load returns a NOT_FOUND error when no record exists.
	Load(ctx context.Context, username, name, format string) (*Record, error)
	Close(ctx context.Context) error
}
