/*
Package domain contains the core value types of the formation engine.

It defines the role/symmetry table shared by every formation model, the
side-type classification of a role, the error taxonomy surfaced at every
boundary, and the lifecycle events emitted for observability. The package
is kept free of I/O and of any knowledge of concrete models.

# Key Entities

  - SideType: how a role's position is derived (Side, Center or Symmetry of another role).
  - Role: a slot's name and side type.
  - RoleTable: the fixed 11-slot table indexed by uniform number (unum).
  - LifecycleHooks: callbacks fired on role updates, training and document reads.
*/
package domain
