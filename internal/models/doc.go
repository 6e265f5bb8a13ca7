// Package models defines the core domain models for hausmate.
//
// # Models
//
//   - User: a registered account, identified by email
//   - Household: a group of users sharing expenses
//   - Expense: a single expense belonging to a household
//   - ExpenseSplit: one member's owed share of a non-personal expense
//
// # Design Principles
//
// 1. **Explicit references**: models hold ID strings for relationships instead
// of pointers, so there is no implicit lazy loading. Enrichment (user names,
// emails) happens in read paths via explicit joins.
// 2. **Composition**: an Expense exclusively owns its splits. Splits are
// created in the same transaction as the expense and removed by cascade when
// the expense is deleted.
// 3. **Closed enums**: category, payment method and split type are closed
// string-typed sets validated at the edge. Free-text tagging, if ever added,
// gets its own field rather than widening these sets.
// 4. **Fixed-point money**: every monetary field is a decimal.Decimal with two
// fractional digits; float64 is never used for amounts.
package models
