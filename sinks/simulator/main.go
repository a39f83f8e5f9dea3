// Package main provides a simulated elevator car controller.
// It reads one floor request from stdin, pretends to move the car, and
// reports the result, matching the protocol the dispatch sink speaks.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Request represents the input from the dispatch sink.
type Request struct {
	Floor       string    `json:"floor"`
	RequestedAt time.Time `json:"requested_at"`
}

// Response represents the output to the dispatch sink.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// maxFloor is the highest floor the simulated building has.
const maxFloor = 99

func main() {
	// Progress goes to stderr so stdout carries only the JSON response.
	log.SetOutput(os.Stderr)
	log.SetPrefix("simulator: ")

	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	floor, err := strconv.Atoi(req.Floor)
	if err != nil {
		writeErrorResponse(fmt.Sprintf("invalid floor %q", req.Floor))
		return
	}
	if floor < 0 || floor > maxFloor {
		writeErrorResponse(fmt.Sprintf("floor %d out of range", floor))
		return
	}

	log.Printf("request for floor %d received at %s", floor, req.RequestedAt.Format(time.RFC3339))
	log.Printf("doors closing")
	log.Printf("moving to floor %d", floor)
	log.Printf("arrived, doors opening")

	writeSuccessResponse()
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
