/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"
	"testing"
)

type player struct {
	Name   string
	Rating int
}

type unregistered struct{}

func TestEntityRegistration(t *testing.T) {
	mc := NewContext()

	entity := NewPersistentEntity("Player").
		AddProperty(NewPersistentProperty("Name", reflect.TypeOf("")).
			WithMapping(NewPropertyMapping(&KeyValue{Key: "name", Index: true}))).
		AddProperty(NewPersistentProperty("Rating", reflect.TypeOf(0)))

	RegisterEntity[player](mc, entity)

	t.Run("Lookup", func(t *testing.T) {
		got, ok := Entity[player](mc)
		if !ok {
			t.Fatal("Expected entity for player to be registered")
		}
		if got.Name != "Player" {
			t.Errorf("Expected entity name Player, got %q", got.Name)
		}
	})

	t.Run("MissingType", func(t *testing.T) {
		if _, ok := Entity[unregistered](mc); ok {
			t.Error("Expected no entity for unregistered type")
		}
	})

	t.Run("PropertyOrder", func(t *testing.T) {
		e, _ := Entity[player](mc)
		props := e.Properties()
		if len(props) != 2 {
			t.Fatalf("Expected 2 properties, got %d", len(props))
		}
		if props[0].Name != "Name" || props[1].Name != "Rating" {
			t.Errorf("Properties out of registration order: %v, %v", props[0].Name, props[1].Name)
		}
	})

	t.Run("MappedForm", func(t *testing.T) {
		e, _ := Entity[player](mc)

		name, _ := e.Property("Name")
		kv := name.Mapping().MappedForm()
		if kv == nil || !kv.Index || kv.Key != "name" {
			t.Errorf("Unexpected mapped form for Name: %+v", kv)
		}

		rating, _ := e.Property("Rating")
		if rating.Mapping() != nil {
			t.Error("Rating should have no mapping metadata")
		}
	})

	t.Run("DuplicateRegistrationPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic on duplicate entity registration")
			}
		}()
		RegisterEntity[player](mc, NewPersistentEntity("Player"))
	})
}
