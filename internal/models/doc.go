// Package models defines the core domain types for splitledger.
//
// # Groups and members
//
// A Group is a named, append-only set of members. Members are opaque string
// identifiers (account ids, addresses); they have no lifecycle of their own and
// exist only through group membership. Member order is insertion order and is
// significant: debt simplification breaks ties by it.
//
// # Ledger state
//
// Each group owns a Ledger holding two structures:
//   - Balances: signed net position per member. Positive means the group owes
//     the member, negative means the member owes the group. The sum over all
//     members is always zero.
//   - Debts: the direct debtor -> creditor obligations that produced those
//     positions. Absent entries read as zero.
//
// Expenses are transient: only their effect on a Ledger is kept. There is no
// expense history or journal.
package models
