/*
Package lr implements prerequisites for parsing context free grammars:
the grammar model, static grammar analysis, and LR items and states.
The parsers themselves live in sub-packages lr0 and lrk, and in the
top-level packages ll and td.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ➞  A a
    b.LHS("A").N("B").N("D").End()     // A  ➞  B D
    b.LHS("B").T("b", 2).End()         // B  ➞  b
    b.LHS("B").Epsilon()               // B  ➞
    b.LHS("D").T("d", 3).End()         // D  ➞  d
    b.LHS("D").Epsilon()               // D  ➞

This results in the following trivial grammar, as traced by Dump:

   g, _ := b.Grammar()
   g.Dump()

   grammar "G":
      0: S ➞ A a
      1: A ➞ B D
      2: B ➞ b
      3: B ➞ ε
      4: D ➞ d
      5: D ➞ ε

Static Grammar Analysis

After the grammar is complete, it may be subjected to analysis. All
analyses run the same machine: a monotone fixed-point iteration over a
map from non-terminals to elements of a semilattice. FIRST- and
FOLLOW-sets of configurable lookahead length k are the two built-in
instances; a simpler FIRST(1) shortcut is available as LRAnalysis.

    first := lr.FirstSets(g, 1)
    follow := lr.FollowSets(g, 1, first)

Items and States

LR parsers work on sets of Earley items. A Machine computes closures and
goto-sets of item sets on demand; no table is generated up front. Items
optionally carry a lookahead word of length up to k, which degenerates to
the plain LR(0) item for k = 0.

BSD License

Copyright (c) 2017–2020, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomp.lr'.
func tracer() tracing.Trace {
	return tracing.Select("chomp.lr")
}
