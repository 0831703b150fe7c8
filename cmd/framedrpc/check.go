package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"framed-rpc/client"
	"framed-rpc/rpcerror"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run ad-hoc conformance checks against a live server",
	Long: `Asserts expected results and error kinds for the standard demo
functions, including the disconnect/reconnect behavior of the client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		failures := 0
		if err := c.WithConnection(func(c *client.Client) error {
			failures += checkBasics(c)
			failures += checkErrors(c)
			return nil
		}); err != nil {
			return err
		}
		failures += checkReconnection(c)

		if failures > 0 {
			return fmt.Errorf("%d check(s) failed", failures)
		}
		fmt.Println("all checks passed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// expect runs one call and compares the result. Returns 1 on failure so
// callers can count.
func expect(c *client.Client, want any, function string, args ...any) int {
	got, err := c.Call(function, args...)
	if err != nil {
		fmt.Printf("FAIL %s%v: %v\n", function, args, err)
		return 1
	}
	if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
		fmt.Printf("FAIL %s%v = %v, want %v\n", function, args, got, want)
		return 1
	}
	fmt.Printf("ok   %s%v = %v\n", function, args, got)
	return 0
}

func checkBasics(c *client.Client) int {
	failures := 0
	failures += expect(c, 100, "add", 42, 58)
	failures += expect(c, "Hello, World!", "greet", "World")
	failures += expect(c, true, "is_positive", 5)
	failures += expect(c, false, "is_positive", -5)
	failures += expect(c, 15, "sum_array", []int{1, 2, 3, 4, 5})

	// Void function: nil result, no error.
	result, err := c.Call("no_return")
	if err != nil || result != nil {
		fmt.Printf("FAIL no_return() = (%v, %v), want (nil, nil)\n", result, err)
		failures++
	} else {
		fmt.Println("ok   no_return() returned no value")
	}
	return failures
}

func checkErrors(c *client.Client) int {
	failures := 0

	_, err := c.Call("non_existent_function")
	var notFound *rpcerror.FunctionNotFoundError
	if !errors.As(err, &notFound) {
		fmt.Printf("FAIL non_existent_function: got %v, want FunctionNotFoundError\n", err)
		failures++
	} else {
		fmt.Println("ok   unknown function reported as FunctionNotFoundError")
	}

	var execErr *rpcerror.ExecutionError
	for _, tc := range []struct {
		label string
		args  []any
	}{
		{"too many arguments", []any{1, 2, 3, 4, 5}},
		{"missing arguments", nil},
		{"wrong argument types", []any{"string", true}},
	} {
		if _, err := c.Call("add", tc.args...); !errors.As(err, &execErr) {
			fmt.Printf("FAIL add with %s: got %v, want ExecutionError\n", tc.label, err)
			failures++
		} else {
			fmt.Printf("ok   add with %s reported as ExecutionError\n", tc.label)
		}
	}

	if _, err := c.Call("divide", 10, 0); !errors.As(err, &execErr) {
		fmt.Printf("FAIL divide by zero: got %v, want ExecutionError\n", err)
		failures++
	} else {
		fmt.Println("ok   division by zero reported as ExecutionError")
	}
	return failures
}

// checkReconnection verifies the connect/disconnect state machine: calls
// fail while disconnected, and a reconnected client behaves like a fresh
// one.
func checkReconnection(c *client.Client) int {
	failures := 0

	if err := c.Connect(); err != nil {
		fmt.Printf("FAIL connect: %v\n", err)
		return 1
	}
	defer c.Disconnect()

	failures += expect(c, 12, "add", 5, 7)

	c.Disconnect()
	var connErr *rpcerror.ConnectionError
	if _, err := c.Call("add", 1, 2); !errors.As(err, &connErr) {
		fmt.Printf("FAIL call while disconnected: got %v, want ConnectionError\n", err)
		failures++
	} else {
		fmt.Println("ok   call while disconnected reported as ConnectionError")
	}

	if err := c.Connect(); err != nil {
		fmt.Printf("FAIL reconnect: %v\n", err)
		return failures + 1
	}
	failures += expect(c, 30, "add", 10, 20)
	return failures
}
