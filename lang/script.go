package lang

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/hashicorp/go-hclog"
	"github.com/modil-io/devutils/value"
)

// ScriptExecute calls fn with the given arguments and returns its result. The defaultValue is
// returned when fn is nil or when it panics.
func ScriptExecute(fn func(args ...value.Value) value.Value, defaultValue value.Value, args ...value.Value) (result value.Value) {
	if fn == nil {
		return defaultValue
	}
	defer func() {
		if r := recover(); r != nil {
			hclog.Default().Debug(`script execution failed`, `error`, fmt.Sprint(r))
			result = defaultValue
		}
	}()
	return fn(args...)
}

// ScriptExecuteFunction is like ScriptExecute but takes a Function value. The defaultValue is
// returned when f is nil.
func ScriptExecuteFunction(f *value.Function, defaultValue value.Value, args ...value.Value) value.Value {
	if f == nil {
		return defaultValue
	}
	return ScriptExecute(f.Call, defaultValue, args...)
}

// Evaluate evaluates the given expression using the entries of env as variables. The
// defaultValue is returned when the expression cannot be compiled or when its evaluation fails.
func Evaluate(expression string, defaultValue value.Value, env *value.Map) value.Value {
	vars := ExprEnv(env)
	program, err := expr.Compile(expression, expr.Env(vars))
	if err != nil {
		hclog.Default().Debug(`expression compilation failed`, `expression`, expression, `error`, err.Error())
		return defaultValue
	}
	r, err := expr.Run(program, vars)
	if err != nil {
		hclog.Default().Debug(`expression evaluation failed`, `expression`, expression, `error`, err.Error())
		return defaultValue
	}
	return value.FromNative(r)
}

// ExprEnv converts the entries of the given map into an environment suitable for the expression
// evaluator. Functions are adapted so that they can be called with native arguments.
func ExprEnv(env *value.Map) map[string]interface{} {
	vars := make(map[string]interface{})
	if env != nil {
		env.EachEntry(func(k string, v value.Value) {
			vars[k] = exprValue(v, make(map[value.Value]bool))
		})
	}
	return vars
}

func exprValue(v value.Value, inProgress map[value.Value]bool) interface{} {
	switch v := v.(type) {
	case *value.Map:
		if inProgress[v] {
			return nil
		}
		inProgress[v] = true
		m := make(map[string]interface{}, v.Len())
		v.EachEntry(func(k string, e value.Value) {
			m[k] = exprValue(e, inProgress)
		})
		delete(inProgress, v)
		return m
	case *value.Array:
		if inProgress[v] {
			return nil
		}
		inProgress[v] = true
		es := make([]interface{}, v.Len())
		v.Each(func(i int, e value.Value) {
			es[i] = exprValue(e, inProgress)
		})
		delete(inProgress, v)
		return es
	case *value.Function:
		return func(args ...interface{}) interface{} {
			vs := make([]value.Value, len(args))
			for i, a := range args {
				vs[i] = value.FromNative(a)
			}
			return value.ToNative(v.Call(vs...))
		}
	}
	return value.ToNative(v)
}
