package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"framed-rpc/client"
	"framed-rpc/rpcerror"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a fixed sequence of demonstration calls",
	Long: `Connects to the server and issues a fixed sequence of calls covering
basic types, void returns, expected failures, and complex values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		return c.WithConnection(runDemo)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(c *client.Client) error {
	// Basic data types.
	result, err := c.Call("add", 10, 5)
	if err != nil {
		return err
	}
	fmt.Printf("add(10, 5) = %v\n", result) // expected: 15

	result, err = c.Call("greet", "World")
	if err != nil {
		return err
	}
	fmt.Printf("greet(\"World\") = %v\n", result) // expected: "Hello, World!"

	result, err = c.Call("is_positive", -2.5)
	if err != nil {
		return err
	}
	fmt.Printf("is_positive(-2.5) = %v\n", result) // expected: false

	result, err = c.Call("echo", "This is a test string.")
	if err != nil {
		return err
	}
	fmt.Printf("echo(...) = %v\n", result)

	// Void return: a nil result is the absence of a value, not an error.
	result, err = c.Call("no_return")
	if err != nil {
		return err
	}
	fmt.Printf("no_return() = %v\n", result)

	// Expected failures.
	_, err = c.Call("nonexistent_function", 1, 2, 3)
	var notFound *rpcerror.FunctionNotFoundError
	if errors.As(err, &notFound) {
		fmt.Printf("expected error: %v\n", notFound)
	} else if err != nil {
		return err
	}

	_, err = c.Call("divide", 10, 0)
	var execErr *rpcerror.ExecutionError
	if errors.As(err, &execErr) {
		fmt.Printf("expected error: %v\n", execErr)
	} else if err != nil {
		return err
	}

	// Complex data types.
	fmt.Println("\n--- Complex types ---")
	numbers := []int{1, 2, 3, 4, 5, -1}
	result, err = c.Call("sum_array", numbers)
	if err != nil {
		return err
	}
	fmt.Printf("sum_array(%v) = %v\n", numbers, result) // expected: 14

	person := map[string]any{"name": "Alice", "age": 30, "is_student": false}
	result, err = c.Call("process_person", person)
	if err != nil {
		return err
	}
	fmt.Printf("process_person(%v) = %v\n", person, result)

	names := []string{"Bob", "Charlie"}
	result, err = c.Call("get_greetings", names)
	if err != nil {
		return err
	}
	fmt.Printf("get_greetings(%v) = %v\n", names, result)

	return nil
}
