package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"

	rulesvc "staybase/internal/app/services/rules"
	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/shared/daterange"
	"staybase/proto/accommodationpb"
)

// Server exposes accommodation lookups and stay pricing to peer services.
type Server struct {
	Accommodations domainacc.Repository
	Rules          *rulesvc.Service
	Logger         *slog.Logger
}

var _ accommodationpb.AccommodationServiceServer = (*Server)(nil)

// GetAccommodationInfo returns exists=false with zero values for unknown
// ids; peers treat absence as data, not as a transport failure.
func (s *Server) GetAccommodationInfo(ctx context.Context, req *accommodationpb.GetAccommodationInfoRequest) (*accommodationpb.GetAccommodationInfoResponse, error) {
	acc, err := s.Accommodations.ByID(ctx, domainacc.AccommodationID(req.AccommodationId))
	if err != nil {
		if errors.Is(err, domainacc.ErrNotFound) {
			return &accommodationpb.GetAccommodationInfoResponse{Exists: false}, nil
		}
		return nil, err
	}
	return &accommodationpb.GetAccommodationInfoResponse{
		Exists:      true,
		Id:          string(acc.ID),
		Name:        acc.Name,
		Location:    acc.Location,
		HostId:      string(acc.Host),
		MinGuests:   int32(acc.MinGuests),
		MaxGuests:   int32(acc.MaxGuests),
		AutoApprove: acc.AutoApprove,
		IsPerUnit:   acc.IsPerUnit,
		BasePrice:   acc.BasePrice,
	}, nil
}

// ValidateAndCalculatePrice reports validation failures in the payload with
// success=false; only infrastructure faults surface as gRPC errors.
func (s *Server) ValidateAndCalculatePrice(ctx context.Context, req *accommodationpb.ValidateAndCalculatePriceRequest) (*accommodationpb.ValidateAndCalculatePriceResponse, error) {
	checkIn, err := daterange.ParseDay(req.CheckIn)
	if err != nil {
		return failure("check-in date must use YYYY-MM-DD"), nil
	}
	checkOut, err := daterange.ParseDay(req.CheckOut)
	if err != nil {
		return failure("check-out date must use YYYY-MM-DD"), nil
	}
	stay, err := daterange.NewStayRange(checkIn, checkOut)
	if err != nil {
		return failure("check-out must be after check-in"), nil
	}

	acc, err := s.Accommodations.ByID(ctx, domainacc.AccommodationID(req.AccommodationId))
	if err != nil {
		if errors.Is(err, domainacc.ErrNotFound) {
			return failure("accommodation not found"), nil
		}
		return nil, err
	}

	guests := int(req.Guests)
	if guests < 1 {
		return failure("guest count must be at least 1"), nil
	}
	if !acc.FitsGuests(guests) {
		return failure(fmt.Sprintf("accommodation hosts between %d and %d guests", acc.MinGuests, acc.MaxGuests)), nil
	}

	quote, err := s.Rules.PriceStay(ctx, acc, stay, guests)
	if err != nil {
		return nil, err
	}
	return &accommodationpb.ValidateAndCalculatePriceResponse{
		Success:       true,
		Nights:        int32(quote.Nights),
		TotalPrice:    quote.Total,
		PricePerNight: quote.PricePerNight,
		RulesApplied:  int32(quote.RulesApplied),
	}, nil
}

func failure(message string) *accommodationpb.ValidateAndCalculatePriceResponse {
	return &accommodationpb.ValidateAndCalculatePriceResponse{Success: false, Message: message}
}

// Serve blocks until ctx is cancelled, then drains in-flight RPCs.
func (s *Server) Serve(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen %s: %w", addr, err)
	}
	grpcServer := grpc.NewServer()
	accommodationpb.RegisterAccommodationServiceServer(grpcServer, s)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	if s.Logger != nil {
		s.Logger.Info("grpc listening", "addr", addr)
	}
	return grpcServer.Serve(listener)
}
