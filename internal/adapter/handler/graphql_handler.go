package handler

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql"
	gqlhandler "github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/rl1809/vase-shop/internal/core/service"
)

//go:embed shop.graphqls
var shopSchemaSDL string

var shopSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "shop.graphqls", Input: shopSchemaSDL})

// NewGraphQLHandler serves the shop schema over GET and POST. Parsing,
// validation and variable coercion are done by gqlgen; shopExecutor resolves
// the validated operation against the ShopService.
func NewGraphQLHandler(shop *service.ShopService, timeout time.Duration) http.Handler {
	srv := gqlhandler.New(&shopExecutor{shop: shop, timeout: timeout})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	return srv
}

type shopExecutor struct {
	shop    *service.ShopService
	timeout time.Duration
}

func (e *shopExecutor) Schema() *ast.Schema {
	return shopSchema
}

func (e *shopExecutor) Complexity(typeName, fieldName string, childComplexity int, args map[string]interface{}) (int, bool) {
	return 0, false
}

// Exec resolves root fields in document order, one at a time. A failing field
// is null in data and reported in errors; the other fields still run.
func (e *shopExecutor) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	root := "Query"
	if opCtx.Operation.Operation == ast.Mutation {
		root = "Mutation"
	}

	var (
		data jsonObject
		errs gqlerror.List
	)
	for _, field := range graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{root}) {
		if field.Name == "__typename" {
			data = append(data, jsonField{field.Alias, root})
			continue
		}

		value, err := e.resolve(ctx, field.Name, field.ArgumentMap(opCtx.Variables))
		if err == nil {
			value, err = toGeneric(value)
		}
		if err != nil {
			errs = append(errs, fieldError(opCtx.OperationName, field.Alias, err))
			data = append(data, jsonField{field.Alias, nil})
			continue
		}
		data = append(data, jsonField{field.Alias, project(opCtx, value, field.Selections, field.Definition.Type)})
	}

	raw, err := json.Marshal(data)
	if err != nil {
		errs = append(errs, gqlerror.Errorf("encode response: %v", err))
		return graphql.OneShot(&graphql.Response{Errors: errs})
	}
	return graphql.OneShot(&graphql.Response{Data: raw, Errors: errs})
}

func (e *shopExecutor) resolve(ctx context.Context, name string, args map[string]interface{}) (any, error) {
	switch name {
	case "getVaseById":
		vase, err := e.shop.GetVaseByID(ctx, stringArg(args, "vaseId"))
		return vase, err
	case "getAllVases":
		vases, err := e.shop.GetAllVases(ctx)
		return vases, err
	case "getShoppingCartById":
		cart, err := e.shop.GetShoppingCartByID(ctx, stringArg(args, "shoppingCartId"))
		return cart, err
	case "getAllShoppingCarts":
		carts, err := e.shop.GetAllShoppingCarts(ctx)
		return carts, err
	case "createVase":
		input, _ := args["input"].(map[string]interface{})
		price, err := floatArg(input, "unitPrice")
		if err != nil {
			return nil, err
		}
		vase, err := e.shop.CreateVase(ctx, stringArg(input, "name"), price)
		return vase, err
	case "updateVase":
		price, err := floatArg(args, "unitPrice")
		if err != nil {
			return nil, err
		}
		vase, err := e.shop.UpdateVase(ctx, stringArg(args, "id"), stringArg(args, "name"), price)
		return vase, err
	case "createNewShoppingCart":
		cart, err := e.shop.CreateNewShoppingCart(ctx)
		return cart, err
	case "addItemToCart":
		cart, err := e.shop.AddItemToCart(ctx, stringArg(args, "cartId"), stringArg(args, "productId"))
		return cart, err
	case "removeItemFromCart":
		cart, err := e.shop.RemoveItemFromCart(ctx, stringArg(args, "cartId"), stringArg(args, "cartItemId"))
		return cart, err
	case "deleteShoppingCart":
		res, err := e.shop.DeleteShoppingCart(ctx, stringArg(args, "cartId"))
		return res, err
	default:
		return nil, fmt.Errorf("field %s is not supported", name)
	}
}

func fieldError(operation, key string, err error) *gqlerror.Error {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("graphql %s.%s: %v", operation, key, err)
	}
	return &gqlerror.Error{
		Message:    err.Error(),
		Path:       ast.Path{ast.PathName(key)},
		Extensions: map[string]interface{}{"code": code},
	}
}

// toGeneric turns a domain value into maps and slices keyed by its JSON
// names, which are also the schema's field names.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// project keeps the selected fields of v, under their aliases and in
// selection order.
func project(opCtx *graphql.OperationContext, v any, sel ast.SelectionSet, typ *ast.Type) any {
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = project(opCtx, elem, sel, typ.Elem)
		}
		return out
	case map[string]any:
		typeName := typ.Name()
		obj := jsonObject{}
		for _, field := range graphql.CollectFields(opCtx, sel, []string{typeName}) {
			if field.Name == "__typename" {
				obj = append(obj, jsonField{field.Alias, typeName})
				continue
			}
			obj = append(obj, jsonField{field.Alias, project(opCtx, v[field.Name], field.Selections, field.Definition.Type)})
		}
		return obj
	default:
		return v
	}
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func floatArg(args map[string]interface{}, name string) (float64, error) {
	switch v := args[name].(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	default:
		return 0, fmt.Errorf("argument %s: unexpected value %v", name, v)
	}
}

type jsonField struct {
	key   string
	value any
}

// jsonObject marshals as a JSON object that keeps field order.
type jsonObject []jsonField

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
