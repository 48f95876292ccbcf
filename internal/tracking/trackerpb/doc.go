// Package trackerpb holds the generated messages and service stubs for the
// tracking.Tracker gRPC service, plus a CBOR codec that clients may select
// with the "cbor" content-subtype instead of the default protobuf encoding.
package trackerpb

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative tracking.proto
