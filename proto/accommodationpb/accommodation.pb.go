// Package accommodationpb contains hand-maintained wire types and service
// bindings for proto/accommodation.proto. Keep both files in sync when the
// contract changes.
package accommodationpb

import (
	"github.com/golang/protobuf/proto"
)

type GetAccommodationInfoRequest struct {
	AccommodationId string `protobuf:"bytes,1,opt,name=accommodation_id,json=accommodationId,proto3" json:"accommodationId,omitempty"`
}

func (m *GetAccommodationInfoRequest) Reset()         { *m = GetAccommodationInfoRequest{} }
func (m *GetAccommodationInfoRequest) String() string { return proto.CompactTextString(m) }
func (*GetAccommodationInfoRequest) ProtoMessage()    {}

type GetAccommodationInfoResponse struct {
	Exists      bool    `protobuf:"varint,1,opt,name=exists,proto3" json:"exists,omitempty"`
	Id          string  `protobuf:"bytes,2,opt,name=id,proto3" json:"id,omitempty"`
	Name        string  `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
	Location    string  `protobuf:"bytes,4,opt,name=location,proto3" json:"location,omitempty"`
	HostId      string  `protobuf:"bytes,5,opt,name=host_id,json=hostId,proto3" json:"hostId,omitempty"`
	MinGuests   int32   `protobuf:"varint,6,opt,name=min_guests,json=minGuests,proto3" json:"minGuests,omitempty"`
	MaxGuests   int32   `protobuf:"varint,7,opt,name=max_guests,json=maxGuests,proto3" json:"maxGuests,omitempty"`
	AutoApprove bool    `protobuf:"varint,8,opt,name=auto_approve,json=autoApprove,proto3" json:"autoApprove,omitempty"`
	IsPerUnit   bool    `protobuf:"varint,9,opt,name=is_per_unit,json=isPerUnit,proto3" json:"isPerUnit,omitempty"`
	BasePrice   float64 `protobuf:"fixed64,10,opt,name=base_price,json=basePrice,proto3" json:"basePrice,omitempty"`
}

func (m *GetAccommodationInfoResponse) Reset()         { *m = GetAccommodationInfoResponse{} }
func (m *GetAccommodationInfoResponse) String() string { return proto.CompactTextString(m) }
func (*GetAccommodationInfoResponse) ProtoMessage()    {}

type ValidateAndCalculatePriceRequest struct {
	AccommodationId string `protobuf:"bytes,1,opt,name=accommodation_id,json=accommodationId,proto3" json:"accommodationId,omitempty"`
	CheckIn         string `protobuf:"bytes,2,opt,name=check_in,json=checkIn,proto3" json:"checkIn,omitempty"`
	CheckOut        string `protobuf:"bytes,3,opt,name=check_out,json=checkOut,proto3" json:"checkOut,omitempty"`
	Guests          int32  `protobuf:"varint,4,opt,name=guests,proto3" json:"guests,omitempty"`
}

func (m *ValidateAndCalculatePriceRequest) Reset()         { *m = ValidateAndCalculatePriceRequest{} }
func (m *ValidateAndCalculatePriceRequest) String() string { return proto.CompactTextString(m) }
func (*ValidateAndCalculatePriceRequest) ProtoMessage()    {}

type ValidateAndCalculatePriceResponse struct {
	Success       bool    `protobuf:"varint,1,opt,name=success,proto3" json:"success,omitempty"`
	Message       string  `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
	Nights        int32   `protobuf:"varint,3,opt,name=nights,proto3" json:"nights,omitempty"`
	TotalPrice    float64 `protobuf:"fixed64,4,opt,name=total_price,json=totalPrice,proto3" json:"totalPrice,omitempty"`
	PricePerNight float64 `protobuf:"fixed64,5,opt,name=price_per_night,json=pricePerNight,proto3" json:"pricePerNight,omitempty"`
	RulesApplied  int32   `protobuf:"varint,6,opt,name=rules_applied,json=rulesApplied,proto3" json:"rulesApplied,omitempty"`
}

func (m *ValidateAndCalculatePriceResponse) Reset()         { *m = ValidateAndCalculatePriceResponse{} }
func (m *ValidateAndCalculatePriceResponse) String() string { return proto.CompactTextString(m) }
func (*ValidateAndCalculatePriceResponse) ProtoMessage()    {}
