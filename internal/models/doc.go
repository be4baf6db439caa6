// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Trip: a group of people travelling together, with an ordered member roster
//   - Expense: money one member paid on behalf of some of the others
//   - Category: a fixed label used to group expenses
//
// Members are identified by name strings; there are no user accounts.
//
// # Design Principles
//
//  1. **Order matters**: rosters and participant lists keep insertion order,
//     because settlement tie-breaks and remainder cents follow it
//  2. **Exact money**: amounts are decimals, never floats
//  3. **Avoid circular references**: use ID strings instead of pointers for relationships
//
// Balances and settlement plans are not models. They are derived on every
// request by the calculator package and never stored.
package models
