// Package api exposes editor functionality to Lua scripts.
//
// Each Module installs a table under a _ks_<name> global. InjectAll then
// gathers those tables into the global ks table, so scripts write
//
//	ks.reg.write("a", {"one", "two"})
//	local last = ks.reg.last("/")
package api
