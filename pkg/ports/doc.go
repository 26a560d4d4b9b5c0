/*
Package ports defines the interfaces that decouple the formation core from
concrete models and storage backends.

# Key Interfaces

  - Model: the capability every concrete formation method implements (position
    math, training, and its configuration block in a document).
  - DocumentStore: persists serialized formation documents by ID (file, memory, Redis).
*/
package ports
