package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/fulfillment"
	"github.com/chihoangvnn/sunfoods-sub019/internal/marketplace/shopee"
	"github.com/chihoangvnn/sunfoods-sub019/internal/shipping"
	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Encoding response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// createShippingRequest is the JSON body for shipment creation. The sender
// block is optional; the service-level default origin is used when absent.
type createShippingRequest struct {
	VendorOrderID string                 `json:"vendor_order_id"`
	OrderNumber   string                 `json:"order_number"`
	Sender        *carrier.Address       `json:"sender"`
	Receiver      carrier.Address        `json:"receiver"`
	Parcel        carrier.Parcel         `json:"parcel"`
	Items         []carrier.Item         `json:"items"`
	Options       carrier.ServiceOptions `json:"options"`
}

func (s *Server) handleCreateShippingOrder(w http.ResponseWriter, r *http.Request) {
	svc, err := s.shippingService(r)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	var req createShippingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	sender := s.defaultSender
	if req.Sender != nil {
		sender = *req.Sender
	}

	result := svc.CreateShippingOrder(r.Context(), shipping.ShippingRequest{
		VendorOrderID: req.VendorOrderID,
		OrderNumber:   req.OrderNumber,
		Receiver:      req.Receiver,
		Parcel:        req.Parcel,
		Items:         req.Items,
		Options:       req.Options,
	}, sender)
	s.writeJSON(w, http.StatusOK, result)
}

type trackOrderRequest struct {
	VendorOrderID string `json:"vendor_order_id"`
}

func (s *Server) handleTrackOrder(w http.ResponseWriter, r *http.Request) {
	svc, err := s.shippingService(r)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	var req trackOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := svc.TrackOrder(r.Context(), req.VendorOrderID)
	s.writeJSON(w, http.StatusOK, result)
}

type cancelOrderRequest struct {
	VendorOrderID string `json:"vendor_order_id"`
	Reason        string `json:"reason"`
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	svc, err := s.shippingService(r)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	var req cancelOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := svc.CancelOrder(r.Context(), req.VendorOrderID, req.Reason)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCalculateFee(w http.ResponseWriter, r *http.Request) {
	svc, err := s.shippingService(r)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	var req carrier.FeeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := svc.CalculateShippingFee(r.Context(), req)
	s.writeJSON(w, http.StatusOK, result)
}

type compareFeesResponse struct {
	Quotes []*carrier.FeeResponse `json:"quotes"`
	Errors []string               `json:"errors,omitempty"`
}

func (s *Server) handleCompareFees(w http.ResponseWriter, r *http.Request) {
	var req carrier.FeeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	quotes, errs := s.registry.CompareFees(r.Context(), &req)
	resp := compareFeesResponse{Quotes: quotes}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, e.Error())
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFulfillmentQueue(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")

	var filter fulfillment.QueueFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, st := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, store.ShopeeStatus(strings.TrimSpace(st)))
		}
	}

	tasks, err := s.fulfillment.GetFulfillmentQueue(r.Context(), account, filter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleFulfillmentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.fulfillment.GetFulfillmentStats(r.Context(), r.PathValue("account"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

type updateTaskStatusRequest struct {
	Status            fulfillment.TaskStatus `json:"status"`
	TrackingNumber    string                 `json:"tracking_number"`
	ShippingCarrier   string                 `json:"shipping_carrier"`
	EstimatedDelivery *time.Time             `json:"estimated_delivery"`
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req updateTaskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	order, err := s.fulfillment.UpdateTaskStatus(r.Context(), r.PathValue("id"), req.Status, &fulfillment.TaskUpdates{
		TrackingNumber:    req.TrackingNumber,
		ShippingCarrier:   req.ShippingCarrier,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleGenerateLabel(w http.ResponseWriter, r *http.Request) {
	label, err := s.fulfillment.GenerateShippingLabel(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, label)
}

type batchRequest struct {
	OrderIDs []string                `json:"order_ids"`
	Action   fulfillment.BatchAction `json:"action"`
}

func (s *Server) handleBatchProcess(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := s.fulfillment.BatchProcessOrders(r.Context(), req.OrderIDs, req.Action)
	if s.metrics != nil {
		for _, item := range result.Results {
			outcome := "success"
			if !item.Success {
				outcome = "failure"
			}
			s.metrics.RecordBatchItem(string(req.Action), outcome)
		}
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIngestShopeeOrder(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	order, err := s.ingestor.IngestJSON(r.Context(), raw)
	if err != nil {
		var verr *shopee.ValidationError
		if errors.As(err, &verr) {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, order)
}

// statusForError maps store-level errors to HTTP statuses.
func statusForError(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
