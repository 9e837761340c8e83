package health

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
)

// ServiceName is the name reported to gRPC health clients.
const ServiceName = "primind.reminder.v1.ReminderService"

// Check implements grpchealth.Checker. The empty service name and
// ServiceName share the overall status.
func (c *Checker) Check(ctx context.Context, req *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	if req.Service != "" && req.Service != ServiceName {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("unknown service %s", req.Service))
	}

	status := grpchealth.StatusServing
	if c.CheckAll(ctx).Status != StatusHealthy {
		status = grpchealth.StatusNotServing
	}
	return &grpchealth.CheckResponse{Status: status}, nil
}

var _ grpchealth.Checker = (*Checker)(nil)
