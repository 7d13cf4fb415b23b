// Package zerobuf is the runtime of tables generated by zerobufc.
//
// A table object is a view over one contiguous allocation: a 4-byte version
// header, the fixed-size members at offsets computed by the compiler, and a
// 16-byte (offset, size) slot per dynamic member. Dynamic data follows the
// static region. Offsets are relative to the start of the allocation, so an
// image can be copied, persisted or sent as is and re-opened with Load.
//
// Nested tables do not own memory. They are bound to a sub-allocator that
// addresses a range of the parent and resolves it again on every access,
// which keeps them valid while the parent grows, and lets Clone and Move
// re-address a whole object tree with Rebind.
//
// Objects are not safe for concurrent mutation.
package zerobuf
