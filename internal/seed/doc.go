// Package seed loads the built-in catalog into the intelligence database.
//
// A Seeder performs one run: it opens a single transaction, inserts every
// research entry that is not already present, appends every optimization
// entry, and commits once. Any storage error rolls the whole run back.
package seed
