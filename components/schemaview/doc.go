// Package schemaview provides a small net/http add-on that exposes registered
// model definitions: JSON endpoints listing models and per-model attribute
// detail, plus an HTML reference page rendered through the htmldoc emitter.
//
// The default handler responds to GET and HEAD requests. Hidden attributes are
// omitted from responses unless the component is configured to include them,
// matching what serialized records expose.
package schemaview
