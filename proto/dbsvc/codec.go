package dbsvc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec stands in for the real protobuf wire codec: dbsvc.pb.go is
// hand-authored rather than generated by protoc, so the wire types here
// don't implement proto.Message. Registering under grpc's built-in codec
// name ("proto") means every stub below rides the same content-negotiation
// path a real protoc-gen-go-grpc client/server would use, only the byte
// format differs. See DESIGN.md.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                            { return "proto" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
