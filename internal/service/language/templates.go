package language

const pythonTemplate = "print('Hello, World!')"

const cppTemplate = `#include <bits/stdc++.h>
using namespace std;
int main() {
  cout << "Hello, World!";
  return 0;
}`

const cTemplate = `#include <stdio.h>
int main() {
  printf("Hello, World!\n");
  return 0;
}`

// Scanner 那一行末尾带一个空格
const javaTemplate = "import java.util.Scanner;\n" +
	"public class Main {\n" +
	"  public static void main(String[] args) {\n" +
	"    Scanner sc = new Scanner(System.in); \n" +
	"    System.out.println(\"Hello, World!\");\n" +
	"  }\n" +
	"}"

const javascriptTemplate = `console.log("Hello, World!");`

const htmlTemplate = `<!DOCTYPE html>
<html>
<head><title>Hello</title></head>
<body>Hello, World!</body>
</html>`

const cssTemplate = `body {
  font-family: Arial;
  background-color: #f0f0f0;
}`
