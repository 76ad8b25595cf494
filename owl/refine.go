// Copyright 2017 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package owl

// IsRefinement reports whether r narrows a restriction inherited from an
// ancestor. A restriction is a refinement when at least one ancestor
// restricts the same property and none of those restrictions has the same
// shape. Shape compares the allValuesFrom target, the effective qualified
// cardinality and onClass.
func (c *Class) IsRefinement(r *Restriction) bool {
	var inherited []*Restriction
	for _, anc := range c.Ancestors() {
		for _, ar := range anc.Restrictions() {
			if ar.Property == r.Property && ar.Inverse == r.Inverse {
				inherited = append(inherited, ar)
			}
		}
	}
	if len(inherited) == 0 {
		return false
	}
	for _, ar := range inherited {
		if sameShape(r, ar) {
			return false
		}
	}
	return true
}

func sameShape(a, b *Restriction) bool {
	an, aok := a.EffectiveCardinality()
	bn, bok := b.EffectiveCardinality()
	return a.AllValuesFrom == b.AllValuesFrom &&
		aok == bok && an == bn &&
		a.OnClass == b.OnClass
}
