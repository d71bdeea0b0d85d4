// Package corpus reads and writes item corpora.
//
// A corpus file is a YAML (or JSON) list of items:
//
//	- id: recipe_001
//	  name: Сырники
//	  tags:
//	    meal: [завтрак]
//	    geography: [русская кухня]
//	  ingredients:
//	    - name: творог
//	      amount: 500 г
//
// Tag keys must be category names from core.Categories. Ingredients are
// listed separately; only their names take part in the tag graph.
package corpus
