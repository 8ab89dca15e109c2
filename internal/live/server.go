package live

import (
	"log/slog"

	"google.golang.org/grpc"

	pb "helmsman/internal/api/pb"
	"helmsman/internal/store"
)

// Server implements the EngineFeed StreamEvents gRPC endpoint.
type Server struct {
	pb.UnimplementedEngineFeedServer
	feed *Feed
	log  *slog.Logger
}

// NewServer creates a gRPC server backed by the given Feed.
func NewServer(feed *Feed, log *slog.Logger) *Server {
	return &Server{feed: feed, log: log}
}

// RegisterGRPC registers the server on the given gRPC server instance.
func (s *Server) RegisterGRPC(gs *grpc.Server) {
	pb.RegisterEngineFeedServer(gs, s)
}

// StreamEvents sends a snapshot of recent events, then streams new events as
// cycles produce them. The stream ends when the client disconnects.
func (s *Server) StreamEvents(req *pb.StreamEventsRequest, stream grpc.ServerStreamingServer[pb.EngineEvent]) error {
	symbol := req.GetSymbol()

	for _, evt := range s.feed.Recent() {
		if symbol != "" && evt.Symbol != symbol {
			continue
		}
		if err := stream.Send(eventToProto(evt)); err != nil {
			return err
		}
	}

	subID, ch := s.feed.Subscribe(1024)
	defer s.feed.Unsubscribe(subID)

	s.log.Info("grpc client subscribed", "subID", subID, "symbol", symbol)

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("grpc client disconnected", "subID", subID)
			return nil
		case evt, ok := <-ch:
			if !ok {
				return nil
			}
			if symbol != "" && evt.Symbol != symbol {
				continue
			}
			if err := stream.Send(eventToProto(evt)); err != nil {
				return err
			}
		}
	}
}

func eventToProto(evt store.JournalEvent) *pb.EngineEvent {
	return &pb.EngineEvent{
		Type:        string(evt.Type),
		Symbol:      evt.Symbol,
		Side:        string(evt.Side),
		Qty:         evt.Qty,
		Price:       evt.Price,
		Stop:        evt.Stop,
		Source:      evt.Source,
		Note:        evt.Note,
		TimestampMs: evt.Time.UnixMilli(),
	}
}
