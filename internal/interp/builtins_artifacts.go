package interp

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/provelang/provescript/internal/schema"
)

// ArtifactStore is an open on-disk artifact database. The handle lives for
// the rest of the session.
type ArtifactStore struct {
	Path string
	DB   *sql.DB
}

func (st *ArtifactStore) Type() ObjectType           { return ARTIFACT_STORE_OBJ }
func (st *ArtifactStore) Inspect() string            { return fmt.Sprintf("ArtifactStore %s", st.Path) }
func (st *ArtifactStore) RuntimeSchema() schema.Type { return schema.TCon{Name: "ArtifactStore"} }

func argArtifact(name string, obj Object) (*Artifact, *Error) {
	a, ok := obj.(*Artifact)
	if !ok {
		return nil, newError("%s: expected an Artifact, got %s", name, obj.Inspect())
	}
	return a, nil
}

func argStore(name string, obj Object) (*ArtifactStore, *Error) {
	st, ok := obj.(*ArtifactStore)
	if !ok {
		return nil, newError("%s: expected an ArtifactStore, got %s", name, obj.Inspect())
	}
	return st, nil
}

func contentDigest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

const createArtifactsTable = `
CREATE TABLE IF NOT EXISTS artifacts (
	id      TEXT PRIMARY KEY,
	kind    TEXT NOT NULL,
	path    TEXT NOT NULL,
	digest  TEXT NOT NULL,
	created TEXT NOT NULL
)`

func init() {
	declare(&Primitive{
		Name: "load_module",
		Sch:  mono(schema.Func([]schema.Type{schema.String}, topLevel(schema.Module))),
		Life: Current,
		Doc: []string{
			"Load a verification target from a file and return a handle to it.",
			"The handle records the file's content digest.",
		},
		Impl: func(s *Session) Object {
			return builtin1("load_module", nil, func(ip *Interp, a Object) Object {
				path, errObj := argString("load_module", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("load_module", func(ip *Interp) Object {
					data, err := os.ReadFile(path)
					if err != nil {
						return newError("load_module: %s", err)
					}
					base := filepath.Base(path)
					name := strings.TrimSuffix(base, filepath.Ext(base))
					return &ModuleHandle{
						Path:   path,
						Name:   name,
						Digest: contentDigest(data),
						Size:   int64(len(data)),
					}
				})
			})
		},
	})

	declare(&Primitive{
		Name: "module_name",
		Sch:  mono(schema.Func([]schema.Type{schema.Module}, schema.String)),
		Life: Current,
		Doc: []string{
			"Return the name of a loaded module.",
		},
		Impl: func(s *Session) Object {
			return builtin1("module_name", nil, func(ip *Interp, a Object) Object {
				m, ok := a.(*ModuleHandle)
				if !ok {
					return newError("module_name: expected a Module, got %s", a.Inspect())
				}
				return &String{Value: m.Name}
			})
		},
	})

	declare(&Primitive{
		Name: "write_artifact",
		Sch: mono(schema.Func(
			[]schema.Type{schema.String, schema.String, schema.String},
			topLevel(schema.TCon{Name: "Artifact"}))),
		Life: Current,
		Doc: []string{
			"Write content to a file and register it as a verification",
			"artifact of the given kind. The artifact carries a fresh id and",
			"the content's digest, and is added to the session log.",
		},
		Impl: func(s *Session) Object {
			return builtin3("write_artifact", nil, func(ip *Interp, a, b, c Object) Object {
				kind, errObj := argString("write_artifact", a)
				if errObj != nil {
					return errObj
				}
				path, errObj := argString("write_artifact", b)
				if errObj != nil {
					return errObj
				}
				content, errObj := argString("write_artifact", c)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("write_artifact", func(ip *Interp) Object {
					if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
						return newError("write_artifact: %s", err)
					}
					art := &Artifact{
						ID:      uuid.NewString(),
						Kind:    kind,
						Path:    path,
						Digest:  contentDigest([]byte(content)),
						Created: time.Now().UTC(),
					}
					ip.Session.RecordArtifact(art)
					return art
				})
			})
		},
	})

	declare(&Primitive{
		Name: "artifact_open",
		Sch:  mono(schema.Func([]schema.Type{schema.String}, topLevel(schema.TCon{Name: "ArtifactStore"}))),
		Life: Current,
		Doc: []string{
			"Open an on-disk artifact store, creating it if needed.",
			"An empty path opens the store configured in artifact_db.",
		},
		Impl: func(s *Session) Object {
			return builtin1("artifact_open", nil, func(ip *Interp, a Object) Object {
				path, errObj := argString("artifact_open", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("artifact_open", func(ip *Interp) Object {
					if path == "" {
						path = ip.Session.Config.ArtifactDB
					}
					if path == "" {
						return newError("artifact_open: no store path given and artifact_db is not configured")
					}
					db, err := sql.Open("sqlite", path)
					if err != nil {
						return newError("artifact_open: %s", err)
					}
					if _, err := db.Exec(createArtifactsTable); err != nil {
						db.Close()
						return newError("artifact_open: %s", err)
					}
					return &ArtifactStore{Path: path, DB: db}
				})
			})
		},
	})

	declare(&Primitive{
		Name: "artifact_put",
		Sch: mono(schema.Func(
			[]schema.Type{schema.TCon{Name: "ArtifactStore"}, schema.TCon{Name: "Artifact"}},
			topLevel(schema.Unit))),
		Life: Current,
		Doc: []string{
			"Record an artifact in a store. Re-recording the same artifact",
			"updates its entry.",
		},
		Impl: func(s *Session) Object {
			return builtin2("artifact_put", nil, func(ip *Interp, a, b Object) Object {
				st, errObj := argStore("artifact_put", a)
				if errObj != nil {
					return errObj
				}
				art, errObj := argArtifact("artifact_put", b)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("artifact_put", func(ip *Interp) Object {
					_, err := st.DB.Exec(
						`INSERT INTO artifacts (id, kind, path, digest, created) VALUES (?, ?, ?, ?, ?)
						 ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, path = excluded.path,
						 digest = excluded.digest, created = excluded.created`,
						art.ID, art.Kind, art.Path, art.Digest, art.Created.Format(time.RFC3339),
					)
					if err != nil {
						return newError("artifact_put: %s", err)
					}
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: "artifact_list",
		Sch: mono(schema.Func(
			[]schema.Type{schema.TCon{Name: "ArtifactStore"}},
			topLevel(schema.TArray{Elem: schema.String}))),
		Life: Current,
		Doc: []string{
			"List the ids of every artifact in a store, oldest first.",
		},
		Impl: func(s *Session) Object {
			return builtin1("artifact_list", nil, func(ip *Interp, a Object) Object {
				st, errObj := argStore("artifact_list", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("artifact_list", func(ip *Interp) Object {
					rows, err := st.DB.Query(`SELECT id FROM artifacts ORDER BY created, id`)
					if err != nil {
						return newError("artifact_list: %s", err)
					}
					defer rows.Close()
					var ids []Object
					for rows.Next() {
						var id string
						if err := rows.Scan(&id); err != nil {
							return newError("artifact_list: %s", err)
						}
						ids = append(ids, &String{Value: id})
					}
					if err := rows.Err(); err != nil {
						return newError("artifact_list: %s", err)
					}
					return &Array{Elements: ids}
				})
			})
		},
	})

	declare(&Primitive{
		Name: "write_summary",
		Sch:  mono(schema.Func([]schema.Type{schema.String}, topLevel(schema.Unit))),
		Life: Current,
		Doc: []string{
			"Write a YAML summary of the session's bindings and produced",
			"artifacts to the given file.",
		},
		Impl: func(s *Session) Object {
			return builtin1("write_summary", nil, func(ip *Interp, a Object) Object {
				path, errObj := argString("write_summary", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("write_summary", func(ip *Interp) Object {
					data, err := yaml.Marshal(sessionSummary(ip.Session))
					if err != nil {
						return newError("write_summary: %s", err)
					}
					if err := os.WriteFile(path, data, 0o644); err != nil {
						return newError("write_summary: %s", err)
					}
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: "read_config",
		Sch:  forall([]string{"a"}, schema.Func([]schema.Type{schema.String}, topLevel(tv("a")))),
		Life: Current,
		Doc: []string{
			"Read a YAML file into a script value. Mappings become records,",
			"sequences become arrays.",
		},
		Impl: func(s *Session) Object {
			return builtin1("read_config", nil, func(ip *Interp, a Object) Object {
				path, errObj := argString("read_config", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("read_config", func(ip *Interp) Object {
					data, err := os.ReadFile(path)
					if err != nil {
						return newError("read_config: %s", err)
					}
					var doc interface{}
					if err := yaml.Unmarshal(data, &doc); err != nil {
						return newError("read_config: %s: %s", path, err)
					}
					return yamlToObject(doc)
				})
			})
		},
	})
}

type summaryArtifact struct {
	ID      string `yaml:"id"`
	Kind    string `yaml:"kind"`
	Path    string `yaml:"path"`
	Digest  string `yaml:"digest"`
	Created string `yaml:"created"`
}

type summary struct {
	Bindings  []string          `yaml:"bindings"`
	Theorems  []string          `yaml:"theorems"`
	Artifacts []summaryArtifact `yaml:"artifacts"`
}

func sessionSummary(s *Session) summary {
	out := summary{Bindings: s.BindingNames()}
	for _, name := range out.Bindings {
		if thm, ok := s.Values[name].(*Theorem); ok {
			out.Theorems = append(out.Theorems, fmt.Sprintf("%s: %s", name, thm.Inspect()))
		}
	}
	for _, a := range s.Artifacts {
		out.Artifacts = append(out.Artifacts, summaryArtifact{
			ID:      a.ID,
			Kind:    a.Kind,
			Path:    a.Path,
			Digest:  a.Digest,
			Created: a.Created.Format(time.RFC3339),
		})
	}
	return out
}

// yamlToObject maps a decoded YAML document into the value domain.
func yamlToObject(v interface{}) Object {
	switch v := v.(type) {
	case nil:
		return UNIT
	case bool:
		return nativeBoolToBooleanObject(v)
	case int:
		return &Integer{Value: int64(v)}
	case int64:
		return &Integer{Value: v}
	case string:
		return &String{Value: v}
	case []interface{}:
		elems := make([]Object, 0, len(v))
		for _, el := range v {
			obj := yamlToObject(el)
			if isError(obj) {
				return obj
			}
			elems = append(elems, obj)
		}
		return &Array{Elements: elems}
	case map[string]interface{}:
		fields := make(map[string]Object, len(v))
		for k, el := range v {
			obj := yamlToObject(el)
			if isError(obj) {
				return obj
			}
			fields[k] = obj
		}
		return NewRecord(fields)
	}
	return newError("read_config: unsupported YAML value %v (%T)", v, v)
}
