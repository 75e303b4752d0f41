// Package kernel holds the value objects shared by every aggregate of the
// procurement domain: identifiers (UUID), the acting person (Actor, Role) and
// measured values (Money, Quantity).
//
// All of them are immutable, validated in their constructors and carry a
// ConstructorGuard so that zero values are rejected by Validate.
package kernel
