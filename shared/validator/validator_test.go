package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"hotelier/shared/failure"
	"hotelier/shared/validator"
)

type profileUpdate struct {
	Name     string `validate:"required"            json:"name"`
	Email    string `validate:"required,email"      json:"email"`
	Capacity int    `validate:"gte=1,lte=20"        json:"capacity"`
	Role     string `validate:"oneof=guest manager" json:"role"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *profileUpdate
		expectError bool
	}{
		{
			name: "valid struct",
			data: &profileUpdate{
				Name:     "John Doe",
				Email:    "john@example.com",
				Capacity: 2,
				Role:     "guest",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &profileUpdate{
				Email:    "john@example.com",
				Capacity: 2,
				Role:     "guest",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &profileUpdate{
				Name:     "John Doe",
				Email:    "invalid-email",
				Capacity: 2,
				Role:     "guest",
			},
			expectError: true,
		},
		{
			name: "capacity out of range",
			data: &profileUpdate{
				Name:     "John Doe",
				Email:    "john@example.com",
				Capacity: 50,
				Role:     "guest",
			},
			expectError: true,
		},
		{
			name: "invalid role",
			data: &profileUpdate{
				Name:     "John Doe",
				Email:    "john@example.com",
				Capacity: 2,
				Role:     "intruder",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid json body", func(t *testing.T) {
		body := strings.NewReader(`{"name":"John Doe","email":"john@example.com","capacity":2,"role":"guest"}`)

		var data profileUpdate
		if err := validator.Validate(body, &data); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if data.Name != "John Doe" {
			t.Errorf("expected decoded name, got %q", data.Name)
		}
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		body := strings.NewReader(`{"name":`)

		var data profileUpdate
		err := validator.Validate(body, &data)

		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if failure.GetCode(err) != 400 {
			t.Errorf("expected 400, got %d", failure.GetCode(err))
		}
	})

	t.Run("decoded body still validated", func(t *testing.T) {
		body := strings.NewReader(`{"email":"john@example.com","capacity":2,"role":"guest"}`)

		var data profileUpdate
		if err := validator.Validate(body, &data); err == nil {
			t.Error("expected validation error for missing name, got nil")
		}
	})
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "manager",
			tag:         "oneof=guest manager receptionist",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "intruder",
			tag:         "oneof=guest manager receptionist",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

type uploadRequest struct {
	File multipart.FileHeader `validate:"mimetypes=image/png image/jpeg,maxfilesize=2"`
}

func fileHeader(contentType string, size int64) multipart.FileHeader {
	return multipart.FileHeader{
		Filename: "upload.bin",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestFileValidationTags(t *testing.T) {
	tests := []struct {
		name        string
		file        multipart.FileHeader
		expectError bool
	}{
		{
			name:        "allowed mimetype within size",
			file:        fileHeader("image/png", 1024),
			expectError: false,
		},
		{
			name:        "disallowed mimetype",
			file:        fileHeader("application/pdf", 1024),
			expectError: true,
		},
		{
			name:        "file over the size limit",
			file:        fileHeader("image/jpeg", 3*1024*1024),
			expectError: true,
		},
		{
			name:        "file exactly at the size limit",
			file:        fileHeader("image/jpeg", 2*1024*1024),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := uploadRequest{File: tt.file}

			err := validator.ValidateStruct(&req)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
