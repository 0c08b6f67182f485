package dbsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DatabaseService_ServiceName = "dbsvc.DatabaseService"

	DatabaseService_Connect_FullMethodName = "/dbsvc.DatabaseService/Connect"
	DatabaseService_Query_FullMethodName   = "/dbsvc.DatabaseService/Query"
	DatabaseService_List_FullMethodName    = "/dbsvc.DatabaseService/List"
	DatabaseService_Tables_FullMethodName     = "/dbsvc.DatabaseService/Tables"
	DatabaseService_Disconnect_FullMethodName = "/dbsvc.DatabaseService/Disconnect"
	DatabaseService_Listen_FullMethodName     = "/dbsvc.DatabaseService/Listen"
)

// DatabaseServiceClient is the client API for DatabaseService.
type DatabaseServiceClient interface {
	Connect(ctx context.Context, in *ConnectRequest, opts ...grpc.CallOption) (*ConnectResponse, error)
	Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error)
	List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error)
	Tables(ctx context.Context, in *TablesRequest, opts ...grpc.CallOption) (*TablesResponse, error)
	Disconnect(ctx context.Context, in *DisconnectRequest, opts ...grpc.CallOption) (*DisconnectResponse, error)
	Listen(ctx context.Context, in *ListenRequest, opts ...grpc.CallOption) (DatabaseService_ListenClient, error)
}

type databaseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDatabaseServiceClient(cc grpc.ClientConnInterface) DatabaseServiceClient {
	return &databaseServiceClient{cc}
}

func (c *databaseServiceClient) Connect(ctx context.Context, in *ConnectRequest, opts ...grpc.CallOption) (*ConnectResponse, error) {
	out := new(ConnectResponse)
	if err := c.cc.Invoke(ctx, DatabaseService_Connect_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *databaseServiceClient) Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error) {
	out := new(QueryResponse)
	if err := c.cc.Invoke(ctx, DatabaseService_Query_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *databaseServiceClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	out := new(ListResponse)
	if err := c.cc.Invoke(ctx, DatabaseService_List_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *databaseServiceClient) Tables(ctx context.Context, in *TablesRequest, opts ...grpc.CallOption) (*TablesResponse, error) {
	out := new(TablesResponse)
	if err := c.cc.Invoke(ctx, DatabaseService_Tables_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *databaseServiceClient) Disconnect(ctx context.Context, in *DisconnectRequest, opts ...grpc.CallOption) (*DisconnectResponse, error) {
	out := new(DisconnectResponse)
	if err := c.cc.Invoke(ctx, DatabaseService_Disconnect_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *databaseServiceClient) Listen(ctx context.Context, in *ListenRequest, opts ...grpc.CallOption) (DatabaseService_ListenClient, error) {
	stream, err := c.cc.(grpc.ClientConnInterface).NewStream(ctx, &DatabaseService_ServiceDesc.Streams[0], DatabaseService_Listen_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &databaseServiceListenClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// DatabaseService_ListenClient is the client-side stream for Listen.
type DatabaseService_ListenClient interface {
	Recv() (*DatabaseListenEvent, error)
	grpc.ClientStream
}

type databaseServiceListenClient struct {
	grpc.ClientStream
}

func (x *databaseServiceListenClient) Recv() (*DatabaseListenEvent, error) {
	m := new(DatabaseListenEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// DatabaseServiceServer is the server API for DatabaseService.
type DatabaseServiceServer interface {
	Connect(context.Context, *ConnectRequest) (*ConnectResponse, error)
	Query(context.Context, *QueryRequest) (*QueryResponse, error)
	List(context.Context, *ListRequest) (*ListResponse, error)
	Tables(context.Context, *TablesRequest) (*TablesResponse, error)
	Disconnect(context.Context, *DisconnectRequest) (*DisconnectResponse, error)
	Listen(*ListenRequest, DatabaseService_ListenServer) error
}

// UnimplementedDatabaseServiceServer may be embedded by server
// implementations to get forward-compatible default ("not implemented")
// behavior for methods added to DatabaseServiceServer in the future.
type UnimplementedDatabaseServiceServer struct{}

func (UnimplementedDatabaseServiceServer) Connect(context.Context, *ConnectRequest) (*ConnectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Connect not implemented")
}
func (UnimplementedDatabaseServiceServer) Query(context.Context, *QueryRequest) (*QueryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Query not implemented")
}
func (UnimplementedDatabaseServiceServer) List(context.Context, *ListRequest) (*ListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}
func (UnimplementedDatabaseServiceServer) Tables(context.Context, *TablesRequest) (*TablesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Tables not implemented")
}
func (UnimplementedDatabaseServiceServer) Disconnect(context.Context, *DisconnectRequest) (*DisconnectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Disconnect not implemented")
}
func (UnimplementedDatabaseServiceServer) Listen(*ListenRequest, DatabaseService_ListenServer) error {
	return status.Error(codes.Unimplemented, "method Listen not implemented")
}

// DatabaseService_ListenServer is the server-side stream for Listen.
type DatabaseService_ListenServer interface {
	Send(*DatabaseListenEvent) error
	grpc.ServerStream
}

type databaseServiceListenServer struct {
	grpc.ServerStream
}

func (x *databaseServiceListenServer) Send(m *DatabaseListenEvent) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterDatabaseServiceServer(s grpc.ServiceRegistrar, srv DatabaseServiceServer) {
	s.RegisterService(&DatabaseService_ServiceDesc, srv)
}

func _DatabaseService_Connect_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ConnectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DatabaseServiceServer).Connect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DatabaseService_Connect_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DatabaseServiceServer).Connect(ctx, req.(*ConnectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DatabaseService_Query_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(QueryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DatabaseServiceServer).Query(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DatabaseService_Query_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DatabaseServiceServer).Query(ctx, req.(*QueryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DatabaseService_List_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DatabaseServiceServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DatabaseService_List_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DatabaseServiceServer).List(ctx, req.(*ListRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DatabaseService_Tables_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TablesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DatabaseServiceServer).Tables(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DatabaseService_Tables_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DatabaseServiceServer).Tables(ctx, req.(*TablesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DatabaseService_Disconnect_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DisconnectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DatabaseServiceServer).Disconnect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DatabaseService_Disconnect_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DatabaseServiceServer).Disconnect(ctx, req.(*DisconnectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DatabaseService_Listen_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(ListenRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(DatabaseServiceServer).Listen(m, &databaseServiceListenServer{stream})
}

// DatabaseService_ServiceDesc is the grpc.ServiceDesc for DatabaseService.
var DatabaseService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DatabaseService_ServiceName,
	HandlerType: (*DatabaseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Connect", Handler: _DatabaseService_Connect_Handler},
		{MethodName: "Query", Handler: _DatabaseService_Query_Handler},
		{MethodName: "List", Handler: _DatabaseService_List_Handler},
		{MethodName: "Tables", Handler: _DatabaseService_Tables_Handler},
		{MethodName: "Disconnect", Handler: _DatabaseService_Disconnect_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Listen",
			Handler:       _DatabaseService_Listen_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "dbsvc.proto",
}
