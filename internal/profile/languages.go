package profile

import "github.com/codescope/codescope-mcp/pkg/types"

// BuiltinDefinitions returns the stock project-type definitions in their
// registration (and therefore detection-priority) order. New types are added
// here, not by branching logic elsewhere.
func BuiltinDefinitions() []Definition {
	return []Definition{
		androidDefinition(),
		iosDefinition(),
		javaDefinition(),
		javascriptDefinition(),
		pythonDefinition(),
		webDefinition(),
	}
}

func androidDefinition() Definition {
	return Definition{
		Type:               "android",
		Extensions:         []string{".md", ".kt", ".kts", ".java", ".xml", ".gradle", ".properties", ".toml"},
		PriorityFiles:      []string{"activity", "fragment", "manifest", "mainactivity", "service", "viewmodel"},
		PriorityExtensions: []string{".kt", ".java"},
		IgnorePatterns:     []string{"build/", "*.apk", "*.dex", ".gradle/"},
		Indicators:         []string{"AndroidManifest.xml", "app/build.gradle", "app/build.gradle.kts"},
		ChunkRules: []ChunkRuleDef{
			{Kind: types.ChunkClass, Patterns: []string{
				`^\s*(?:public|private|protected|internal|open|sealed|data|abstract|final|enum|annotation)?\s*(?:class|object|interface|enum|annotation)\s+\w+`,
			}},
			{Kind: types.ChunkFunction, Patterns: []string{
				`^\s*(?:(?:suspend|internal|private|protected|public|operator|override|inline|external|static|final|abstract|open)\s+)*fun\s+\w+`,
				`^\s*(?:(?:public|private|protected|static|final|abstract|synchronized|native|strictfp)\s+)+\w+\s+\w+\s*\(`, // Java
			}},
			{Kind: types.ChunkImport, Patterns: []string{
				`^\s*import\s+[^\s]+`,
				`^\s*package\s+[^\s]+`,
			}},
			{Kind: types.ChunkAnnotation, Patterns: []string{
				`^\s*@\w+`,
				`^\s*annotation\s+\w+`,
			}},
		},
		EntityRules: []EntityRuleDef{
			{Kind: types.EntityScreen, Patterns: []string{
				`([A-Z][a-zA-Z0-9]+Activity)`,
				`([A-Z][a-zA-Z0-9]+Fragment)`,
				`([A-Z][a-zA-Z0-9]+Screen)`,
			}},
			{Kind: types.EntityClass, Patterns: []string{
				`\bclass\s+(\w+)`,
				`\bobject\s+(\w+)`,
				`\binterface\s+(\w+)`,
				`\benum\s+(\w+)`,
				`\bannotation\s+(\w+)`,
			}},
			{Kind: types.EntityFunction, Patterns: []string{
				`fun\s+(\w+)`,
				`\w+\s+(\w+)\s*\(`, // Java, e.g. public void onClick(
			}},
		},
		SummaryKeywords: []string{"android", "activity", "fragment", "kotlin", "java"},
	}
}

func iosDefinition() Definition {
	return Definition{
		Type:               "ios",
		Extensions:         []string{".md", ".swift", ".m", ".h", ".plist", ".storyboard", ".xib"},
		PriorityFiles:      []string{"AppDelegate", "SceneDelegate", "ViewController"},
		PriorityExtensions: []string{".swift", ".m"},
		IgnorePatterns:     []string{"DerivedData/", "*.xcuserstate", "*.xcworkspace", "*.xcodeproj/"},
		Indicators:         []string{"Info.plist", "AppDelegate.swift"},
		ChunkRules: []ChunkRuleDef{
			{Kind: types.ChunkClass, Patterns: []string{
				`^\s*(?:public|private|internal|open|final)?\s*(?:class|struct|enum|protocol)\s+\w+`,
			}},
			{Kind: types.ChunkFunction, Patterns: []string{
				`^\s*(?:(?:mutating|static|class|private|public|internal|open|final|override)\s+)*func\s+\w+`,
				`^\s*- \([\w\s*]+\)\w+\s*\{`, // ObjC
			}},
			{Kind: types.ChunkImport, Patterns: []string{
				`^\s*import\s+[^\s]+`,
				`^\s*@import\s+[^\s]+`,
			}},
		},
		EntityRules: []EntityRuleDef{
			{Kind: types.EntityScreen, Patterns: []string{
				`([A-Z][a-zA-Z0-9]+ViewController)`,
			}},
			{Kind: types.EntityClass, Patterns: []string{
				`\bclass\s+(\w+)`,
				`\bstruct\s+(\w+)`,
				`\benum\s+(\w+)`,
				`\bprotocol\s+(\w+)`,
			}},
			{Kind: types.EntityFunction, Patterns: []string{
				`func\s+(\w+)`,
				`-\s*\([^)]+\)\s*(\w+)\s*\{`, // ObjC
			}},
		},
		SummaryKeywords: []string{"ios", "swift", "viewcontroller", "apple", "objective-c"},
	}
}

func javaDefinition() Definition {
	return Definition{
		Type:               "java",
		Extensions:         []string{".md", ".java", ".xml", ".gradle", ".properties", ".toml", ".jar"},
		PriorityFiles:      []string{"Main", "App", "Application", "Activity", "Controller", "Service", "Servlet"},
		PriorityExtensions: []string{".java"},
		IgnorePatterns:     []string{"build/", "out/", "*.class", "*.jar", ".gradle/"},
		Indicators:         []string{"pom.xml", "build.gradle", "settings.gradle", "src/main/java"},
		ChunkRules: []ChunkRuleDef{
			{Kind: types.ChunkClass, Patterns: []string{
				`^\s*(?:public|private|protected|abstract|final|static|sealed|non-sealed)?\s*(?:class|interface|enum|record)\s+\w+`,
			}},
			{Kind: types.ChunkFunction, Patterns: []string{
				`^\s*(?:(?:public|private|protected|static|final|abstract|synchronized|native|strictfp)\s+)+\w+\s+\w+\s*\(`,
			}},
			{Kind: types.ChunkImport, Patterns: []string{
				`^\s*import\s+[^\s]+`,
				`^\s*package\s+[^\s]+`,
			}},
			{Kind: types.ChunkAnnotation, Patterns: []string{
				`^\s*@\w+`,
				`^\s*annotation\s+\w+`,
			}},
		},
		EntityRules: []EntityRuleDef{
			{Kind: types.EntityScreen, Patterns: []string{
				`([A-Z][a-zA-Z0-9]+Activity)`,
				`([A-Z][a-zA-Z0-9]+Controller)`,
				`([A-Z][a-zA-Z0-9]+Servlet)`,
			}},
			{Kind: types.EntityClass, Patterns: []string{
				`\bclass\s+(\w+)`,
				`\binterface\s+(\w+)`,
				`\benum\s+(\w+)`,
			}},
			{Kind: types.EntityFunction, Patterns: []string{
				`\b(?:public|private|protected|static|final|abstract|synchronized|native|strictfp)?\s*\w+\s+(\w+)\s*\(`,
			}},
		},
		SummaryKeywords: []string{"java", "spring", "servlet", "activity", "controller"},
	}
}

func javascriptDefinition() Definition {
	return Definition{
		Type:               "javascript",
		Extensions:         []string{".md", ".js", ".ts", ".jsx", ".tsx", ".json", ".mjs"},
		PriorityFiles:      []string{"index", "app", "main", "server"},
		PriorityExtensions: []string{".js", ".ts"},
		IgnorePatterns:     []string{"node_modules/", "dist/", "build/", "*.min.js"},
		Indicators:         []string{"package.json", "tsconfig.json"},
		ChunkRules: []ChunkRuleDef{
			{Kind: types.ChunkClass, Patterns: []string{
				`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?(?:class|interface)\s+\w+`,
			}},
			{Kind: types.ChunkFunction, Patterns: []string{
				`^\s*(?:export\s+)?(?:async\s+)?function\s+\w+`,
				`^\s*(?:const|let|var)\s+\w+\s*=\s*\(?\s*(?:async\s*)?(?:\([^()]*\)|\w+)\s*=>`,
				`^\s*function\s+\w+`,
			}},
			{Kind: types.ChunkImport, Patterns: []string{
				`^\s*import\s+.*from\s+`,
				`^\s*import\s+['"]?[^'"\s]+['"]?`,
				`^\s*require\([^)]+\)`,
			}},
			{Kind: types.ChunkTypeDecl, Patterns: []string{
				`^\s*type\s+\w+`,
				`^\s*interface\s+\w+`,
			}},
		},
		EntityRules: []EntityRuleDef{
			{Kind: types.EntityScreen, Patterns: []string{
				`([A-Z][a-zA-Z0-9]+Page)`,
				`([A-Z][a-zA-Z0-9]+Screen)`,
				`([A-Z][a-zA-Z0-9]+Component)`,
			}},
			{Kind: types.EntityClass, Patterns: []string{
				`\bclass\s+(\w+)`,
				`\binterface\s+(\w+)`,
			}},
			{Kind: types.EntityFunction, Patterns: []string{
				`function\s+(\w+)`,
				`const\s+(\w+)\s*=`,
				`let\s+(\w+)\s*=`,
				`var\s+(\w+)\s*=`,
			}},
		},
		SummaryKeywords: []string{"javascript", "typescript", "react", "node", "express"},
	}
}

func pythonDefinition() Definition {
	return Definition{
		Type:               "python",
		Extensions:         []string{".md", ".py", ".pyx", ".pyi", ".txt", ".yml", ".yaml"},
		PriorityFiles:      []string{"main", "app", "__init__", "server", "manage"},
		PriorityExtensions: []string{".py"},
		IgnorePatterns:     []string{"__pycache__/", "*.pyc", ".pytest_cache/", "venv/"},
		Indicators:         []string{"requirements.txt", "setup.py", "pyproject.toml"},
		ChunkRules: []ChunkRuleDef{
			{Kind: types.ChunkClass, Patterns: []string{
				`^\s*(?:@[\w\.]+\s*)*class\s+\w+`,
			}},
			{Kind: types.ChunkFunction, Patterns: []string{
				`^\s*(?:@[\w\.]+\s*)*(?:async\s+)?def\s+\w+`,
			}},
			{Kind: types.ChunkImport, Patterns: []string{
				`^\s*import\s+[^\s]+`,
				`^\s*from\s+[^\s]+`,
			}},
			{Kind: types.ChunkDecorator, Patterns: []string{
				`^\s*@[\w\.]+`,
			}},
		},
		EntityRules: []EntityRuleDef{
			{Kind: types.EntityClass, Patterns: []string{
				`class\s+(\w+)`,
			}},
			{Kind: types.EntityFunction, Patterns: []string{
				`def\s+(\w+)`,
				`async\s+def\s+(\w+)`,
			}},
		},
		SummaryKeywords: []string{"python", "django", "flask", "fastapi"},
	}
}

func webDefinition() Definition {
	return Definition{
		Type:               "web",
		Extensions:         []string{".md", ".html", ".css", ".scss", ".sass", ".js", ".ts", ".vue", ".svelte"},
		PriorityFiles:      []string{"index", "app", "main"},
		PriorityExtensions: []string{".js", ".ts", ".vue"},
		IgnorePatterns:     []string{"node_modules/", "dist/", "build/"},
		Indicators:         []string{"index.html", "package.json"},
		ChunkRules: []ChunkRuleDef{
			{Kind: types.ChunkComponent, Patterns: []string{
				`^\s*export\s+default\s+\w+`,
				`^\s*component\s+\w+`,
			}},
			{Kind: types.ChunkFunction, Patterns: []string{
				`^\s*function\s+\w+`,
				`^\s*const\s+\w+\s*=\s*`,
				`^\s*let\s+\w+\s*=\s*`,
				`^\s*\w+\s*=>`,
			}},
			{Kind: types.ChunkStyle, Patterns: []string{
				`^\s*@media`,
				`^\s*\.\w+`,
				`^\s*#\w+`,
			}},
			{Kind: types.ChunkImport, Patterns: []string{
				`^\s*import\s+.*from\s+`,
				`^\s*import\s+[^'"\s]+`,
			}},
		},
		EntityRules: []EntityRuleDef{
			{Kind: types.EntityScreen, Patterns: []string{
				`([A-Z][a-zA-Z0-9]+Page)`,
			}},
			{Kind: types.EntityComponent, Patterns: []string{
				`export\s+default\s+(\w+)`,
				`component\s+(\w+)`,
			}},
			{Kind: types.EntityFunction, Patterns: []string{
				`function\s+(\w+)`,
				`const\s+(\w+)\s*=`,
				`let\s+(\w+)\s*=`,
			}},
		},
		SummaryKeywords: []string{"web", "frontend", "react", "vue", "angular"},
	}
}
