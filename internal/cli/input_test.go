package cli

import (
	"bytes"
	"errors"
	"testing"
)

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("secret"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	if err != nil {
		t.Fatal(err)
	}
	if string(pw) != "secret" {
		t.Fatalf("got %q", pw)
	}
	if !bytes.Contains(out.Bytes(), []byte("Enter password:")) {
		t.Fatalf("prompt missing, got %q", out.String())
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}
