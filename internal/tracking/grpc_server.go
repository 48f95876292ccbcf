package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/banshee-data/vehicle.tracker/internal/tracking/trackerpb"
)

// Service implements the tracking.Tracker gRPC service on top of a Registry.
type Service struct {
	trackerpb.UnimplementedTrackerServer

	registry *Registry
}

// NewService creates a gRPC service backed by reg.
func NewService(reg *Registry) *Service {
	return &Service{registry: reg}
}

// Register registers the service on s.
func (s *Service) Register(srv grpc.ServiceRegistrar) {
	trackerpb.RegisterTrackerServer(srv, s)
}

// StreamLocation serves one vehicle stream. Reports are handled in arrival
// order on this goroutine; a separate writer owns stream.Send.
func (s *Service) StreamLocation(stream grpc.BidiStreamingServer[trackerpb.LocationUpdate, trackerpb.TrackerResponse]) error {
	ctx := stream.Context()
	if err := ctx.Err(); err != nil {
		return status.FromContextError(err).Err()
	}

	r := s.registry
	st := r.NewStream()

	writerErr := make(chan error, 1)
	writerDone := make(chan struct{})
	abort := make(chan struct{})
	go func() {
		defer close(writerDone)
		writerErr <- writerLoop(stream, st, abort)
	}()
	defer func() {
		st.Close()
		s.awaitWriter(st, writerDone, abort)
	}()

	for {
		select {
		case err := <-writerErr:
			return mapStreamError(err)
		default:
		}

		msg, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			r.log.Debug("[gRPC] stream receive ended", "vehicle_id", st.VehicleID(), "error", err)
			return mapStreamError(err)
		}

		err = st.Handle(ctx, reportFromUpdate(msg))
		switch {
		case err == nil:
		case errors.Is(err, ErrDuplicateIdentity):
			// Hold the call open so the conflict notice reaches the client.
			select {
			case <-r.clock.After(r.conflictGrace):
			case <-ctx.Done():
			}
			return status.Errorf(codes.AlreadyExists, "vehicle %s is already connected", msg.GetVehicleId())
		case errors.Is(err, ErrStreamClosed):
			return status.Error(codes.Canceled, "stream closed")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return status.FromContextError(err).Err()
		default:
			r.log.Error("[gRPC] admission failed", "vehicle_id", msg.GetVehicleId(), "error", err)
			return status.Errorf(codes.Unavailable, "tracking store unavailable: %v", err)
		}
	}
}

type responseSender interface {
	Send(*trackerpb.TrackerResponse) error
}

// writerLoop sends queued messages until the stream is closed, then flushes
// whatever is still queued. Once abort is closed it stops before the next
// Send.
func writerLoop(stream responseSender, st *Stream, abort <-chan struct{}) error {
	for {
		select {
		case <-abort:
			return nil
		default:
		}

		select {
		case ack := <-st.Outbound():
			if err := stream.Send(responseFromAck(ack)); err != nil {
				return err
			}
		case <-st.Done():
			for {
				select {
				case <-abort:
					return nil
				default:
				}
				select {
				case ack := <-st.Outbound():
					if err := stream.Send(responseFromAck(ack)); err != nil {
						return err
					}
				default:
					return nil
				}
			}
		}
	}
}

// awaitWriter returns once the writer goroutine has exited. Messages still
// queued after the grace delay are dropped, but a Send already in flight is
// waited out: the stream must not be written after the handler returns.
func (s *Service) awaitWriter(st *Stream, writerDone <-chan struct{}, abort chan<- struct{}) {
	r := s.registry
	select {
	case <-writerDone:
		return
	case <-r.clock.After(r.conflictGrace):
	}
	r.log.Warn("[gRPC] stream writer did not drain before close, dropping queued messages", "vehicle_id", st.VehicleID())
	close(abort)
	<-writerDone
}

func (s *Service) GetVehicleStatus(ctx context.Context, req *trackerpb.VehicleStatusRequest) (*trackerpb.VehicleStatus, error) {
	id := VehicleID(req.GetVehicleId())
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "vehicle_id is required")
	}
	st, err := s.registry.VehicleStatus(ctx, id)
	if errors.Is(err, ErrVehicleNotFound) {
		return nil, status.Errorf(codes.NotFound, "vehicle %s not found", id)
	}
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "get vehicle status: %v", err)
	}
	return statusToProto(st), nil
}

func (s *Service) ListVehicles(ctx context.Context, _ *trackerpb.ListVehiclesRequest) (*trackerpb.VehicleList, error) {
	list, err := s.registry.ActiveVehicles(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "list vehicles: %v", err)
	}
	out := &trackerpb.VehicleList{Vehicles: make([]*trackerpb.VehicleStatus, 0, len(list))}
	for _, v := range list {
		out.Vehicles = append(out.Vehicles, statusToProto(v))
	}
	return out, nil
}

func (s *Service) SendCommand(ctx context.Context, req *trackerpb.CommandRequest) (*trackerpb.CommandResult, error) {
	id := VehicleID(req.GetVehicleId())
	err := s.registry.SendCommand(ctx, id, Command(req.GetCommand()))
	switch {
	case errors.Is(err, ErrEmptyCommand):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrStreamNotFound):
		return nil, status.Errorf(codes.NotFound, "vehicle %s not found or offline", id)
	case err != nil:
		return nil, mapStreamError(err)
	}
	return &trackerpb.CommandResult{
		Success: true,
		Message: fmt.Sprintf("command %s sent to %s", req.GetCommand(), id),
	}, nil
}

func reportFromUpdate(u *trackerpb.LocationUpdate) Report {
	return Report{
		VehicleID:       VehicleID(u.GetVehicleId()),
		Lat:             u.GetLat(),
		Lon:             u.GetLon(),
		SpeedKmh:        u.GetVel(),
		ClientTimestamp: u.GetTimestamp(),
	}
}

func responseFromAck(a Ack) *trackerpb.TrackerResponse {
	return &trackerpb.TrackerResponse{
		VehicleId: string(a.VehicleID),
		Lat:       a.Lat,
		Lon:       a.Lon,
		Vel:       a.SpeedKmh,
		Timestamp: a.ServerTimestamp,
		Command:   string(a.Command),
		Status:    string(a.Status),
	}
}

func statusToProto(v *VehicleStatus) *trackerpb.VehicleStatus {
	out := &trackerpb.VehicleStatus{
		VehicleId:    string(v.VehicleID),
		IsConnected:  v.IsConnected,
		TotalPoints:  v.TotalPoints,
		SpeedChanges: v.SpeedChangeCount,
		Status:       string(v.Status),
	}
	if p := v.LastPosition; p != nil {
		out.LastPosition = &trackerpb.Position{
			Lat:        p.Lat,
			Lon:        p.Lon,
			Vel:        p.SpeedKmh,
			Timestamp:  p.SourceTimestamp,
			ReceivedAt: p.ReceivedAt,
		}
	}
	if sp := v.Speed; sp != nil {
		out.Speed = &trackerpb.SpeedSummary{
			Samples: int32(sp.Samples),
			Mean:    sp.Mean,
			StdDev:  sp.StdDev,
			Max:     sp.Max,
		}
	}
	return out
}

func mapStreamError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.Unknown {
		return err
	}
	if mapped := status.FromContextError(err); mapped.Code() != codes.Unknown {
		return mapped.Err()
	}
	return err
}
