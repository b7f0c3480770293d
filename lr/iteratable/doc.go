/*
Package iteratable implements iteratable container data structures.

Set is a speical purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorihms are often more straightforward
to describe as set constructions and operations. Sets preserve insertion order
and stay safe to iterate while elements are being added, which is exactly the
work-queue behaviour closure computations rely on.

Unusually, all set operations are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
