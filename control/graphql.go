package control

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/peragwin/vuzicscope/scope"
)

// Query runs a GraphQL query or mutation against the store.
func (s *Store) Query(query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		VariableValues: vars,
	})
}

func (s *Store) initGraphql() error {
	channelType, channelInput, applyChannel := newGraphqlType("ChannelParams", &scope.ChannelViewParams{})

	triggerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Trigger",
		Fields: graphql.Fields{
			"level":  &graphql.Field{Type: graphql.Float},
			"slope":  &graphql.Field{Type: graphql.String},
			"source": &graphql.Field{Type: graphql.Int},
		},
	})
	paramsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Params",
		Fields: graphql.Fields{
			"channels": &graphql.Field{Type: graphql.NewList(channelType)},
			"visible":  &graphql.Field{Type: graphql.NewList(graphql.Boolean)},
			"trigger":  &graphql.Field{Type: triggerType},
			"layout":   &graphql.Field{Type: graphql.String},
			"running":  &graphql.Field{Type: graphql.Boolean},
		},
	})
	peakType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Peak",
		Fields: graphql.Fields{
			"channel":   &graphql.Field{Type: graphql.Int},
			"min":       &graphql.Field{Type: graphql.Float},
			"max":       &graphql.Field{Type: graphql.Float},
			"vpp":       &graphql.Field{Type: graphql.Float},
			"updatedAt": &graphql.Field{Type: graphql.String},
		},
	})

	channelArgs := graphql.FieldConfigArgument{
		"channel": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	}
	argChannel := func(p graphql.ResolveParams) (scope.Channel, error) {
		n, _ := p.Args["channel"].(int)
		return channelArg(n)
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"params": &graphql.Field{
				Type: paramsType,
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return paramsView(s.Params()), nil
				},
			},
			"peak": &graphql.Field{
				Type: peakType,
				Args: channelArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ch, err := argChannel(p)
					if err != nil {
						return nil, err
					}
					pm, ok := s.Peak(ch)
					if !ok {
						return nil, nil
					}
					return peakView(ch, pm), nil
				},
			},
			"peaks": &graphql.Field{
				Type: graphql.NewList(peakType),
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					var out []interface{}
					for i := 0; i < scope.NumChannels; i++ {
						if pm, ok := s.Peak(scope.Channel(i)); ok {
							out = append(out, peakView(scope.Channel(i), pm))
						}
					}
					return out, nil
				},
			},
		},
	})

	rootMut := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"channel": &graphql.Field{
				Type: channelType,
				Args: graphql.FieldConfigArgument{
					"channel": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"params":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(channelInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ch, err := argChannel(p)
					if err != nil {
						return nil, err
					}
					args, _ := p.Args["params"].(map[string]interface{})
					var applyErr error
					err = s.Update(func(sp *scope.Params) {
						next := sp.Channels[ch]
						if applyErr = applyChannel(&next, args); applyErr == nil {
							sp.Channels[ch] = next
						}
					})
					if applyErr != nil {
						return nil, applyErr
					}
					if err != nil {
						return nil, err
					}
					return s.Params().Channels[ch], nil
				},
			},
			"show": &graphql.Field{
				Type: paramsType,
				Args: graphql.FieldConfigArgument{
					"channel": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"visible": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ch, err := argChannel(p)
					if err != nil {
						return nil, err
					}
					visible, _ := p.Args["visible"].(bool)
					if err := s.Update(func(sp *scope.Params) { sp.Visible[ch] = visible }); err != nil {
						return nil, err
					}
					return paramsView(s.Params()), nil
				},
			},
			"trigger": &graphql.Field{
				Type: triggerType,
				Args: graphql.FieldConfigArgument{
					"level":  &graphql.ArgumentConfig{Type: graphql.Float},
					"slope":  &graphql.ArgumentConfig{Type: graphql.String},
					"source": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					level, hasLevel := p.Args["level"].(float64)
					var slope *scope.Slope
					if v, ok := p.Args["slope"].(string); ok {
						sl, err := scope.ParseSlope(v)
						if err != nil {
							return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
						}
						slope = &sl
					}
					var source *scope.Channel
					if v, ok := p.Args["source"].(int); ok {
						ch, err := channelArg(v)
						if err != nil {
							return nil, err
						}
						source = &ch
					}
					if err := s.Update(func(sp *scope.Params) {
						if hasLevel {
							sp.Trigger.Level = level
						}
						if slope != nil {
							sp.Trigger.Slope = *slope
						}
						if source != nil {
							sp.TriggerSource = *source
						}
					}); err != nil {
						return nil, err
					}
					return paramsView(s.Params())["trigger"], nil
				},
			},
			"layout": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"mode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					mode, _ := p.Args["mode"].(string)
					layout, err := scope.ParseLayout(mode)
					if err != nil {
						return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
					}
					if err := s.Update(func(sp *scope.Params) { sp.Layout = layout }); err != nil {
						return nil, err
					}
					return layout.String(), nil
				},
			},
			"run": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"running": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					running, _ := p.Args["running"].(bool)
					s.SetRunning(running)
					return s.Params().Running, nil
				},
			},
			"reset": &graphql.Field{
				Type: paramsType,
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					s.Reset()
					return paramsView(s.Params()), nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    rootQuery,
		Mutation: rootMut,
	})
	if err != nil {
		return err
	}
	s.schema = schema
	return nil
}

func paramsView(p scope.Params) map[string]interface{} {
	channels := make([]interface{}, len(p.Channels))
	for i := range p.Channels {
		channels[i] = p.Channels[i]
	}
	return map[string]interface{}{
		"channels": channels,
		"visible":  p.Visible[:],
		"trigger": map[string]interface{}{
			"level":  p.Trigger.Level,
			"slope":  p.Trigger.Slope.String(),
			"source": int(p.TriggerSource) + 1,
		},
		"layout":  p.Layout.String(),
		"running": p.Running,
	}
}

func peakView(ch scope.Channel, pm scope.PeakMeasurement) map[string]interface{} {
	return map[string]interface{}{
		"channel":   int(ch) + 1,
		"min":       pm.Min,
		"max":       pm.Max,
		"vpp":       pm.Vpp,
		"updatedAt": pm.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// newGraphqlType builds an object type and a matching input type from the
// json tags of the struct val points to. The returned apply func copies input
// arguments into a pointer to the same struct type.
func newGraphqlType(name string, val interface{}) (
	*graphql.Object, *graphql.InputObject, func(dst interface{}, args map[string]interface{}) error) {

	fields := graphql.Fields{}
	inputFields := graphql.InputObjectConfigFieldMap{}

	ref := reflect.TypeOf(val).Elem()
	tagMap := newJSONTagFieldMap(ref)

	resolver := func(field int) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			src := reflect.Indirect(reflect.ValueOf(p.Source))
			if !src.IsValid() || src.Type() != ref {
				return nil, fmt.Errorf("unexpected source %#v", p.Source)
			}
			return src.Field(field).Interface(), nil
		}
	}

	for tag, i := range tagMap {
		f := ref.Field(i)
		var typ graphql.Output
		var ityp graphql.Input
		switch f.Type.Kind() {
		case reflect.Bool:
			typ, ityp = graphql.Boolean, graphql.Boolean
		case reflect.Float32, reflect.Float64:
			typ, ityp = graphql.Float, graphql.Float
		case reflect.String:
			typ, ityp = graphql.String, graphql.String
		case reflect.Int, reflect.Int8, reflect.Int32, reflect.Int64:
			typ, ityp = graphql.Int, graphql.Int
		default:
			panic(fmt.Sprint("unsupported type ", f.Type))
		}
		fields[tag] = &graphql.Field{Type: typ, Resolve: resolver(i)}
		inputFields[tag] = &graphql.InputObjectFieldConfig{Type: ityp}
	}

	objType := graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
	inputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "input" + name,
		Fields: inputFields,
	})

	apply := func(dst interface{}, args map[string]interface{}) error {
		elem := reflect.ValueOf(dst).Elem()
		if elem.Type() != ref {
			return fmt.Errorf("cannot apply %s to %T", name, dst)
		}
		for arg, v := range args {
			i, ok := tagMap[arg]
			if !ok {
				return fmt.Errorf("%w: unknown field %q", ErrBadValue, arg)
			}
			if v == nil {
				continue
			}
			rv := reflect.ValueOf(v)
			field := elem.Field(i)
			if !rv.Type().ConvertibleTo(field.Type()) {
				return fmt.Errorf("%w: %s: %v", ErrBadValue, arg, v)
			}
			field.Set(rv.Convert(field.Type()))
		}
		return nil
	}

	return objType, inputType, apply
}

func jsonTag(f *reflect.StructField) string {
	t := f.Tag.Get("json")
	return strings.Split(t, ",")[0]
}

func newJSONTagFieldMap(ref reflect.Type) map[string]int {
	m := make(map[string]int)
	for i := 0; i < ref.NumField(); i++ {
		f := ref.Field(i)
		if tag := jsonTag(&f); tag != "" && tag != "-" {
			m[tag] = i
		}
	}
	return m
}
