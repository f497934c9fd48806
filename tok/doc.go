/*
Package tok defines the small, shared vocabulary every other package in
this module builds on: an opaque token interface and a span type for
input positions. Terminals are matched against tokens by equality (CFG)
or by pattern unification (FCFG); spans are reused both for token
extents and for chart edges.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tok
