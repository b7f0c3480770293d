/*
Package chomp is a compiler front-end toolbox.

chomp strives to be a smart and lightweight tool for experimenting with
scanners and parsers for small languages. It focusses on on-the-fly
construction: no code-generation step, no precomputed tables. Package
structure is as follows:

■ regexp: Package regexp implements regular expressions by Brzozowski
derivatives. Derivatives double as the transition function of the scanner.

■ scanner: Package scanner implements a maximum-munch scanner, driving a
list of regular expressions in parallel. A lexmachine-backed alternative
lives in sub-package lexmach.

■ lr: Package lr implements the grammar model, grammar analysis
(first/follow sets of configurable length), and LR items and states.
Sub-packages lr0 and lrk contain a shift/reduce LR(0) parser and a
continuation-driven LR(k) parser.

■ ll: Package ll implements a predictive LL(k) parser.

■ td: Package td implements a lazy, nondeterministic top-down parser,
useful as a reference oracle for the deterministic parsers.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chomp
