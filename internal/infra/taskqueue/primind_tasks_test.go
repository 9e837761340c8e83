//go:build !gcloud

package taskqueue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPrimindTasksClientRegisterNotification(t *testing.T) {
	scheduleAt := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	var got PrimindTaskRequest
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{
			Name:         "reminders/tasks/req-1",
			ScheduleTime: scheduleAt.Format(time.RFC3339),
			CreateTime:   "2024-03-10T12:00:00Z",
		})
	}))
	defer server.Close()

	client := NewPrimindTasksClient(server.URL, "reminders", "http://reminder/api/v1/notifications/deliver", 1)

	resp, err := client.RegisterNotification(context.Background(), &NotificationTask{
		RequestID:  "req-1",
		Namespace:  "default",
		ScheduleAt: scheduleAt,
		Title:      "Daily check-in",
		Body:       "Time to review your day",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/tasks/reminders" {
		t.Errorf("expected path /tasks/reminders, got %s", gotPath)
	}
	if got.Task.Name != "req-1" {
		t.Errorf("expected task name req-1, got %s", got.Task.Name)
	}
	if got.Task.ScheduleTime != "2024-03-11T09:00:00Z" {
		t.Errorf("unexpected schedule time %s", got.Task.ScheduleTime)
	}

	payload, err := base64.StdEncoding.DecodeString(got.Task.HTTPRequest.Body)
	if err != nil {
		t.Fatalf("body is not base64: %v", err)
	}
	var task NotificationTask
	if err := json.Unmarshal(payload, &task); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if task.RequestID != "req-1" || task.Title != "Daily check-in" {
		t.Errorf("unexpected payload %+v", task)
	}

	if !resp.ScheduleTime.Equal(scheduleAt) {
		t.Errorf("expected schedule time %v, got %v", scheduleAt, resp.ScheduleTime)
	}
}

func TestPrimindTasksClientRegisterNotificationRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{Name: "tasks/req-1"})
	}))
	defer server.Close()

	client := NewPrimindTasksClient(server.URL, "default", "http://target", 3)

	if _, err := client.RegisterNotification(context.Background(), &NotificationTask{RequestID: "req-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
}

func TestPrimindTasksClientRegisterNotificationExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPrimindTasksClient(server.URL, "default", "http://target", 2)

	if _, err := client.RegisterNotification(context.Background(), &NotificationTask{RequestID: "req-1"}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestPrimindTasksClientDeleteTask(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
	}{
		{name: "deleted", statusCode: http.StatusNoContent},
		{name: "already processed", statusCode: http.StatusNotFound},
		{name: "server error", statusCode: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client := NewPrimindTasksClient(server.URL, "default", "http://target", 1)

			err := client.DeleteTask(context.Background(), "req-7")
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteTask() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotMethod != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", gotMethod)
			}
			if gotPath != "/tasks/req-7" {
				t.Errorf("expected path /tasks/req-7, got %s", gotPath)
			}
		})
	}
}
