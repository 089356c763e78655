package interp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/provelang/provescript/internal/schema"
)

// ProverConn is a connection to an external prover service. The service's
// interface is described by .proto files loaded onto the connection; methods
// are invoked dynamically, so no prover-specific stubs are compiled in.
type ProverConn struct {
	Target string
	Conn   *grpc.ClientConn

	mu     sync.RWMutex
	protos map[string]*desc.FileDescriptor
}

func (p *ProverConn) Type() ObjectType { return PROVER_CONN_OBJ }
func (p *ProverConn) Inspect() string {
	if p.Conn == nil {
		return "ProverConn(closed)"
	}
	return fmt.Sprintf("ProverConn(%s)", p.Target)
}
func (p *ProverConn) RuntimeSchema() schema.Type { return schema.TCon{Name: "ProverConn"} }

func (p *ProverConn) register(fd *desc.FileDescriptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.protos[fd.GetName()] = fd
}

// findMethod resolves "package.Service/Method" against the loaded protos.
func (p *ProverConn) findMethod(path string) (*desc.MethodDescriptor, error) {
	serviceName, methodName, ok := strings.Cut(path, "/")
	if !ok {
		return nil, fmt.Errorf("invalid method path %q, expected 'package.Service/Method'", path)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, fd := range p.protos {
		if svc := fd.FindService(serviceName); svc != nil {
			if md := svc.FindMethodByName(methodName); md != nil {
				return md, nil
			}
		}
	}
	return nil, fmt.Errorf("method %q not found (did you load the proto?)", path)
}

func argConn(name string, obj Object) (*ProverConn, *Error) {
	conn, ok := obj.(*ProverConn)
	if !ok {
		return nil, newError("%s: expected a ProverConn, got %s", name, obj.Inspect())
	}
	if conn.Conn == nil {
		return nil, newError("%s: connection is closed", name)
	}
	return conn, nil
}

func init() {
	declare(&Primitive{
		Name: "prover_connect",
		Sch:  mono(schema.Func([]schema.Type{schema.String}, topLevel(schema.TCon{Name: "ProverConn"}))),
		Life: Experimental,
		Doc: []string{
			"Connect to an external prover service. An empty address uses the",
			"configured prover_addr.",
		},
		Impl: func(s *Session) Object {
			return builtin1("prover_connect", nil, func(ip *Interp, a Object) Object {
				target, errObj := argString("prover_connect", a)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("prover_connect", func(ip *Interp) Object {
					if target == "" {
						target = ip.Session.Config.ProverAddr
					}
					if target == "" {
						return newError("prover_connect: no address given and prover_addr is not configured")
					}
					conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
					if err != nil {
						return newError("prover_connect: %s", err)
					}
					return &ProverConn{
						Target: target,
						Conn:   conn,
						protos: make(map[string]*desc.FileDescriptor),
					}
				})
			})
		},
	})

	declare(&Primitive{
		Name: "prover_load_proto",
		Sch: mono(schema.Func(
			[]schema.Type{schema.TCon{Name: "ProverConn"}, schema.String},
			topLevel(schema.Unit))),
		Life: Experimental,
		Doc: []string{
			"Load a .proto service description onto a prover connection.",
		},
		Impl: func(s *Session) Object {
			return builtin2("prover_load_proto", nil, func(ip *Interp, a, b Object) Object {
				conn, errObj := argConn("prover_load_proto", a)
				if errObj != nil {
					return errObj
				}
				path, errObj := argString("prover_load_proto", b)
				if errObj != nil {
					return errObj
				}
				return topLevelAction("prover_load_proto", func(ip *Interp) Object {
					parser := protoparse.Parser{ImportPaths: []string{filepath.Dir(path)}}
					fds, err := parser.ParseFiles(filepath.Base(path))
					if err != nil {
						return newError("prover_load_proto: %s", err)
					}
					for _, fd := range fds {
						conn.register(fd)
					}
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: "external_prover",
		Sch: mono(schema.Func(
			[]schema.Type{schema.TCon{Name: "ProverConn"}, schema.String},
			proofScript(schema.Unit))),
		Life: Experimental,
		Doc: []string{
			"Send the current goal to a prover method, 'package.Service/Method'.",
			"The request message's 'goal' field carries the goal text; the",
			"response's 'valid' field decides whether the goal is discharged,",
			"with 'reason' reported on failure.",
		},
		Impl: func(s *Session) Object {
			return builtin2("external_prover", nil, func(ip *Interp, a, b Object) Object {
				conn, errObj := argConn("external_prover", a)
				if errObj != nil {
					return errObj
				}
				method, errObj := argString("external_prover", b)
				if errObj != nil {
					return errObj
				}
				return proofAction("external_prover", func(ip *Interp) Object {
					if ip.Goal == nil {
						return newError("external_prover: no goal")
					}
					md, err := conn.findMethod(method)
					if err != nil {
						return newError("external_prover: %s", err)
					}
					req := dynamic.NewMessage(md.GetInputType())
					if err := messageFromObject(NewRecord(map[string]Object{
						"goal": &String{Value: ip.Goal.Src},
					}), req); err != nil {
						return newError("external_prover: building request: %s", err)
					}
					resp := dynamic.NewMessage(md.GetOutputType())
					if err := conn.Conn.Invoke(context.Background(), "/"+method, req, resp); err != nil {
						return newError("external_prover: RPC failed: %s", err)
					}
					result, ok := messageToObject(resp).(*Record)
					if !ok {
						return newError("external_prover: malformed response")
					}
					valid, _ := result.Get("valid").(*Boolean)
					if valid == nil || !valid.Value {
						reason := "prover rejected the goal"
						if r, ok := result.Get("reason").(*String); ok && r.Value != "" {
							reason = r.Value
						}
						return newError("external_prover: %s", reason)
					}
					ip.discharge("prover " + method)
					return UNIT
				})
			})
		},
	})

	declare(&Primitive{
		Name: "prover_close",
		Sch:  mono(schema.Func([]schema.Type{schema.TCon{Name: "ProverConn"}}, topLevel(schema.Unit))),
		Life: Experimental,
		Doc: []string{
			"Close a prover connection. Closing twice is harmless.",
		},
		Impl: func(s *Session) Object {
			return builtin1("prover_close", nil, func(ip *Interp, a Object) Object {
				conn, ok := a.(*ProverConn)
				if !ok {
					return newError("prover_close: expected a ProverConn, got %s", a.Inspect())
				}
				return topLevelAction("prover_close", func(ip *Interp) Object {
					if conn.Conn != nil {
						err := conn.Conn.Close()
						conn.Conn = nil
						if err != nil {
							return newError("prover_close: %s", err)
						}
					}
					return UNIT
				})
			})
		},
	})
}

// messageFromObject populates a dynamic message from a record, field by
// field. Unknown record fields are ignored so request shapes can evolve.
func messageFromObject(obj Object, msg *dynamic.Message) error {
	rec, ok := obj.(*Record)
	if !ok {
		return fmt.Errorf("expected a record, got %s", obj.Type())
	}
	for _, f := range rec.Fields {
		fd := msg.GetMessageDescriptor().FindFieldByName(f.Key)
		if fd == nil {
			continue
		}
		v, err := protoValue(f.Value, fd)
		if err != nil {
			return fmt.Errorf("field %s: %v", f.Key, err)
		}
		if v != nil {
			msg.SetField(fd, v)
		}
	}
	return nil
}

func protoValue(val Object, fd *desc.FieldDescriptor) (interface{}, error) {
	if fd.IsRepeated() {
		arr, ok := val.(*Array)
		if !ok {
			return nil, fmt.Errorf("expected an array for repeated field")
		}
		var slice []interface{}
		for _, el := range arr.Elements {
			v, err := protoSingleValue(el, fd)
			if err != nil {
				return nil, err
			}
			slice = append(slice, v)
		}
		return slice, nil
	}
	return protoSingleValue(val, fd)
}

func protoSingleValue(val Object, fd *desc.FieldDescriptor) (interface{}, error) {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32, descriptorpb.FieldDescriptorProto_TYPE_SINT32, descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		if i, ok := val.(*Integer); ok {
			return int32(i.Value), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_INT64, descriptorpb.FieldDescriptorProto_TYPE_SINT64, descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		if i, ok := val.(*Integer); ok {
			return i.Value, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32, descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		if i, ok := val.(*Integer); ok {
			return uint32(i.Value), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64, descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		if i, ok := val.(*Integer); ok {
			return uint64(i.Value), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		if b, ok := val.(*Boolean); ok {
			return b.Value, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		if s, ok := val.(*String); ok {
			return s.Value, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		if s, ok := val.(*String); ok {
			return []byte(s.Value), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		msg := dynamic.NewMessage(fd.GetMessageType())
		if err := messageFromObject(val, msg); err != nil {
			return nil, err
		}
		return msg, nil
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		if i, ok := val.(*Integer); ok {
			return int32(i.Value), nil
		}
		if s, ok := val.(*String); ok {
			if ev := fd.GetEnumType().FindValueByName(s.Value); ev != nil {
				return ev.GetNumber(), nil
			}
		}
	}
	return nil, fmt.Errorf("cannot convert %s to proto type %v", val.Type(), fd.GetType())
}

// messageToObject maps a dynamic message into a record.
func messageToObject(msg *dynamic.Message) Object {
	fields := make(map[string]Object)
	for _, fd := range msg.GetMessageDescriptor().GetFields() {
		fields[fd.GetName()] = objectFromProto(msg.GetField(fd), fd)
	}
	return NewRecord(fields)
}

func objectFromProto(val interface{}, fd *desc.FieldDescriptor) Object {
	if fd.IsRepeated() {
		slice, ok := val.([]interface{})
		if !ok {
			return &Array{}
		}
		elems := make([]Object, 0, len(slice))
		for _, v := range slice {
			elems = append(elems, objectFromProtoSingle(v))
		}
		return &Array{Elements: elems}
	}
	return objectFromProtoSingle(val)
}

func objectFromProtoSingle(val interface{}) Object {
	switch v := val.(type) {
	case nil:
		return UNIT
	case int32:
		return &Integer{Value: int64(v)}
	case int64:
		return &Integer{Value: v}
	case uint32:
		return &Integer{Value: int64(v)}
	case uint64:
		return &Integer{Value: int64(v)}
	case int:
		return &Integer{Value: int64(v)}
	case bool:
		return nativeBoolToBooleanObject(v)
	case string:
		return &String{Value: v}
	case []byte:
		return &String{Value: string(v)}
	case *dynamic.Message:
		return messageToObject(v)
	}
	return UNIT
}
