package rpctest

import (
	"errors"
	"fmt"
	"math"
)

// RegisterStandardFunctions installs the function table the production
// demo server exposes: add, greet, is_positive, echo, no_return, divide,
// sum_array, process_person, get_greetings.
func RegisterStandardFunctions(s *Server) {
	s.Register("add", addFunc)
	s.Register("greet", greetFunc)
	s.Register("is_positive", isPositiveFunc)
	s.Register("echo", echoFunc)
	s.Register("no_return", noReturnFunc)
	s.Register("divide", divideFunc)
	s.Register("sum_array", sumArrayFunc)
	s.Register("process_person", processPersonFunc)
	s.Register("get_greetings", getGreetingsFunc)
}

// errArgCount builds the wrong-argument-count error for a function.
func errArgCount(name string, want, got int) error {
	return fmt.Errorf("%s expects %d argument(s), got %d", name, want, got)
}

// asInt accepts a JSON number with an integral value. encoding/json decodes
// every number as float64, so integer-ness is a value check, not a type
// check.
func asInt(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func addFunc(args []any) (any, error) {
	if len(args) != 2 {
		return nil, errArgCount("add", 2, len(args))
	}
	a, okA := asInt(args[0])
	b, okB := asInt(args[1])
	if !okA || !okB {
		return nil, errors.New("add expects two integers")
	}
	return a + b, nil
}

func greetFunc(args []any) (any, error) {
	if len(args) != 1 {
		return nil, errArgCount("greet", 1, len(args))
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, errors.New("greet expects a string")
	}
	return "Hello, " + name + "!", nil
}

func isPositiveFunc(args []any) (any, error) {
	if len(args) != 1 {
		return nil, errArgCount("is_positive", 1, len(args))
	}
	x, ok := args[0].(float64)
	if !ok {
		return nil, errors.New("is_positive expects a number")
	}
	return x > 0, nil
}

func echoFunc(args []any) (any, error) {
	if len(args) != 1 {
		return nil, errArgCount("echo", 1, len(args))
	}
	return args[0], nil
}

func noReturnFunc(args []any) (any, error) {
	if len(args) != 0 {
		return nil, errArgCount("no_return", 0, len(args))
	}
	return NoResult, nil
}

func divideFunc(args []any) (any, error) {
	if len(args) != 2 {
		return nil, errArgCount("divide", 2, len(args))
	}
	a, okA := args[0].(float64)
	b, okB := args[1].(float64)
	if !okA || !okB {
		return nil, errors.New("divide expects two numbers")
	}
	if b == 0 {
		return nil, errors.New("division by zero")
	}
	return a / b, nil
}

func sumArrayFunc(args []any) (any, error) {
	if len(args) != 1 {
		return nil, errArgCount("sum_array", 1, len(args))
	}
	items, ok := args[0].([]any)
	if !ok {
		return nil, errors.New("sum_array expects a list of numbers")
	}
	var sum int64
	for _, item := range items {
		n, ok := asInt(item)
		if !ok {
			return nil, errors.New("sum_array expects a list of integers")
		}
		sum += n
	}
	return sum, nil
}

func processPersonFunc(args []any) (any, error) {
	if len(args) != 1 {
		return nil, errArgCount("process_person", 1, len(args))
	}
	person, ok := args[0].(map[string]any)
	if !ok {
		return nil, errors.New("process_person expects an object")
	}
	name, _ := person["name"].(string)
	age, _ := asInt(person["age"])
	student, _ := person["is_student"].(bool)
	return fmt.Sprintf("Processed %s, age %d, student: %t", name, age, student), nil
}

func getGreetingsFunc(args []any) (any, error) {
	if len(args) != 1 {
		return nil, errArgCount("get_greetings", 1, len(args))
	}
	names, ok := args[0].([]any)
	if !ok {
		return nil, errors.New("get_greetings expects a list of names")
	}
	greetings := make([]string, 0, len(names))
	for _, n := range names {
		name, ok := n.(string)
		if !ok {
			return nil, errors.New("get_greetings expects a list of strings")
		}
		greetings = append(greetings, "Hello, "+name+"!")
	}
	return greetings, nil
}
