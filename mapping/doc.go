/*
Package mapping holds the metadata registry consumed by the datastore core.

A Context maps Go types to PersistentEntity descriptors. Each entity carries
named PersistentProperty descriptors, and a property may carry a
PropertyMapping whose MappedForm is the key-value storage shape (key name plus
an index flag). The Context also owns a ConverterRegistry; the default
converter set is installed by BasicTypeConverterRegistrar.

Registration follows the same type-keyed pattern as the rest of the module:

	mc := mapping.NewContext()
	entity := mapping.NewPersistentEntity("Player").
	    AddProperty(mapping.NewPersistentProperty("Name", reflect.TypeOf("")).
	        WithMapping(mapping.NewPropertyMapping(&mapping.KeyValue{Key: "name", Index: true})))
	mapping.RegisterEntity[Player](mc, entity)
*/
package mapping
